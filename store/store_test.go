package store

import (
	"testing"
	"time"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	// a second pooled connection would see its own empty :memory: database
	db.DB().SetMaxOpenConns(1)
	require.NoError(t, dbpkg.AutoMigrate(db))
	return db
}

func TestCarePlansActiveByUser(t *testing.T) {
	db := openTestDB(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []models.CarePlan{
		{UserID: 1, PlantID: 1, CareTypeID: 1, StartDate: start, FrequencyDays: 7, Active: true},
		{UserID: 1, PlantID: 2, CareTypeID: 1, StartDate: start, FrequencyDays: 3, Active: false},
		{UserID: 2, PlantID: 3, CareTypeID: 1, StartDate: start, FrequencyDays: 10, Active: true},
		{UserID: 1, PlantID: 4, CareTypeID: 2, StartDate: start, FrequencyDays: 14, Active: true},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	plans, err := CarePlans{DB: db}.ActiveByUser(1)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	// only user 1's active plans, in id order
	assert.Equal(t, int64(1), plans[0].PlantID)
	assert.Equal(t, int64(4), plans[1].PlantID)
	for _, p := range plans {
		assert.True(t, p.Active)
		assert.Equal(t, int64(1), p.UserID)
	}
}

func TestCarePlansActiveByUserEmpty(t *testing.T) {
	db := openTestDB(t)

	plans, err := CarePlans{DB: db}.ActiveByUser(42)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlantsGet(t *testing.T) {
	db := openTestDB(t)

	plant := models.Plant{UserID: 1, Nickname: "Monstera"}
	require.NoError(t, db.Create(&plant).Error)

	got, err := Plants{DB: db}.Get(plant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monstera", got.Nickname)

	_, err = Plants{DB: db}.Get(999)
	assert.Error(t, err)
}

func TestCareTypesGet(t *testing.T) {
	db := openTestDB(t)

	// AutoMigrate seeds the defaults; Watering is the first one.
	got, err := CareTypes{DB: db}.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Watering", got.Name)
	assert.True(t, got.IsDefault())

	_, err = CareTypes{DB: db}.Get(999)
	assert.Error(t, err)
}
