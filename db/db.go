package db

import (
	"os"

	"plantkeeper/config"
	"plantkeeper/logger"
	"plantkeeper/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

// Connect opens the database connection (sqlite3 by default) and runs
// automigrate when AUTOMIGRATE=1 is set.
func Connect() (*gorm.DB, error) {
	database := conf.Database
	if database == "" {
		database = "sqlite3"
	}

	var (
		db  *gorm.DB
		err error
	)

	if database == "postgres" || database == "postgresql" {
		logger.Log.Info("connecting to postgresql...")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass + " sslmode=disable"
		db, err = gorm.Open("postgres", path)
	} else {
		logger.Log.Info("connecting to sqlite3...")
		db, err = gorm.Open("sqlite3", "db/database.db")
	}

	if err != nil {
		logger.Log.Errorf("database connection failed: %v", err)
		return nil, err
	}

	if getenv("AUTOMIGRATE", "0") == "1" {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// AutoMigrate creates/updates the schema and seeds the default care types.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Species{},
		&models.Plant{},
		&models.CareType{},
		&models.CareLog{},
		&models.CarePlan{},
	).Error; err != nil {
		return err
	}
	return SeedDefaultCareTypes(db)
}

// SeedDefaultCareTypes inserts the system care types (user_id NULL) once.
func SeedDefaultCareTypes(db *gorm.DB) error {
	var count int
	if err := db.Model(&models.CareType{}).Where("user_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.CareType{
		{Name: "Watering", Description: "Regular watering schedule for plant hydration"},
		{Name: "Fertilizing", Description: "Nutrient supplementation for healthy growth"},
		{Name: "Repotting", Description: "Transferring plant to a larger container"},
		{Name: "Pruning", Description: "Trimming dead or overgrown foliage"},
		{Name: "Pest Control", Description: "Treatment for insects and diseases"},
		{Name: "Misting", Description: "Spraying leaves for humidity-loving plants"},
	}

	tx := db.Begin()
	for i := range defaults {
		if err := tx.Create(&defaults[i]).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	logger.Log.Infof("seeded %d default care types", len(defaults))
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
