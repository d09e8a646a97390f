package scheduler

import (
	"errors"
	"testing"
	"time"

	"plantkeeper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

type fakePlans struct {
	plans []models.CarePlan
	err   error
}

func (f fakePlans) ActiveByUser(userID int64) ([]models.CarePlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.CarePlan
	for _, p := range f.plans {
		if p.UserID == userID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePlants map[int64]models.Plant

func (f fakePlants) Get(id int64) (*models.Plant, error) {
	p, ok := f[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &p, nil
}

type fakeCareTypes map[int64]models.CareType

func (f fakeCareTypes) Get(id int64) (*models.CareType, error) {
	ct, ok := f[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &ct, nil
}

func TestComputeNextDueDate(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		frequency int
		today     string
		want      string
	}{
		{
			// elapsed = 14, cycles = 2, due = start + 21d
			name:  "mid cycle",
			start: "2024-01-01", frequency: 7, today: "2024-01-15",
			want: "2024-01-22",
		},
		{
			name:  "future start returns start date",
			start: "2024-06-01", frequency: 10, today: "2024-05-20",
			want: "2024-06-01",
		},
		{
			name:  "start today is due next cycle",
			start: "2024-03-10", frequency: 7, today: "2024-03-10",
			want: "2024-03-17",
		},
		{
			// a plan started exactly one cycle ago advances past today,
			// never reporting "due today"
			name:  "cycle boundary",
			start: "2024-01-01", frequency: 7, today: "2024-01-08",
			want: "2024-01-15",
		},
		{
			name:  "daily frequency",
			start: "2024-01-01", frequency: 1, today: "2024-01-03",
			want: "2024-01-04",
		},
		{
			name:  "crosses month end",
			start: "2024-01-20", frequency: 14, today: "2024-01-30",
			want: "2024-02-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeNextDueDate(date(t, tt.start), tt.frequency, date(t, tt.today))
			require.NoError(t, err)
			assert.Equal(t, date(t, tt.want), got)
		})
	}
}

func TestComputeNextDueDateAlwaysStrictlyFuture(t *testing.T) {
	start := date(t, "2024-01-01")
	for _, freq := range []int{1, 3, 7, 30} {
		for offset := 0; offset < 40; offset++ {
			today := start.AddDate(0, 0, offset)
			due, err := ComputeNextDueDate(start, freq, today)
			require.NoError(t, err)
			assert.True(t, due.After(today), "freq=%d offset=%d due=%s", freq, offset, due)
		}
	}
}

func TestComputeNextDueDateInvalidFrequency(t *testing.T) {
	for _, freq := range []int{0, -1} {
		_, err := ComputeNextDueDate(date(t, "2024-01-01"), freq, date(t, "2024-01-15"))
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	}
}

func testScheduler(plans []models.CarePlan) *Scheduler {
	return New(
		fakePlans{plans: plans},
		fakePlants{
			1: {ID: 1, UserID: 1, Nickname: "Monstera"},
			2: {ID: 2, UserID: 1, Nickname: "Fern"},
		},
		fakeCareTypes{
			1: {ID: 1, Name: "Watering"},
			2: {ID: 2, Name: "Fertilizing"},
		},
	)
}

func TestGetUpcoming(t *testing.T) {
	plans := []models.CarePlan{
		{ID: 1, UserID: 1, PlantID: 1, CareTypeID: 1, StartDate: date(t, "2024-01-01"), FrequencyDays: 7, Note: "half a cup", Active: true},
		{ID: 2, UserID: 1, PlantID: 2, CareTypeID: 2, StartDate: date(t, "2024-06-01"), FrequencyDays: 10, Active: true},
	}

	items, err := testScheduler(plans).GetUpcoming(1, date(t, "2024-05-20"))
	require.NoError(t, err)
	require.Len(t, items, 2)

	// plan 1: elapsed 140 days = 20 cycles, due 2024-05-27
	assert.Equal(t, int64(1), items[0].PlantID)
	assert.Equal(t, "Monstera", items[0].PlantNickname)
	assert.Equal(t, "Watering", items[0].CareType)
	assert.Equal(t, "half a cup", items[0].Note)
	assert.Equal(t, "2024-05-27", items[0].DueDate)
	assert.Equal(t, 7, items[0].DaysUntilDue)

	// plan 2 has not started yet: due on its start date
	assert.Equal(t, "Fern", items[1].PlantNickname)
	assert.Equal(t, "2024-06-01", items[1].DueDate)
	assert.Equal(t, 12, items[1].DaysUntilDue)
}

func TestGetUpcomingSortedByDueDate(t *testing.T) {
	plans := []models.CarePlan{
		{ID: 1, UserID: 1, PlantID: 1, CareTypeID: 1, StartDate: date(t, "2024-04-10"), FrequencyDays: 30, Active: true},
		{ID: 2, UserID: 1, PlantID: 2, CareTypeID: 1, StartDate: date(t, "2024-05-01"), FrequencyDays: 3, Active: true},
	}

	items, err := testScheduler(plans).GetUpcoming(1, date(t, "2024-05-02"))
	require.NoError(t, err)
	require.Len(t, items, 2)

	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Due().Before(items[i-1].Due()))
	}
	// plan 2's 3-day cycle comes up before plan 1's monthly one
	assert.Equal(t, int64(2), items[0].PlantID)
}

func TestGetUpcomingTiebreakByPlanID(t *testing.T) {
	// both plans land on 2024-05-08
	plans := []models.CarePlan{
		{ID: 9, UserID: 1, PlantID: 2, CareTypeID: 2, StartDate: date(t, "2024-05-01"), FrequencyDays: 7, Active: true},
		{ID: 3, UserID: 1, PlantID: 1, CareTypeID: 1, StartDate: date(t, "2024-04-24"), FrequencyDays: 7, Active: true},
	}

	items, err := testScheduler(plans).GetUpcoming(1, date(t, "2024-05-05"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, items[0].DueDate, items[1].DueDate)
	assert.Equal(t, int64(1), items[0].PlantID) // plan 3 before plan 9
	assert.Equal(t, int64(2), items[1].PlantID)
}

func TestGetUpcomingNoPlans(t *testing.T) {
	items, err := testScheduler(nil).GetUpcoming(1, date(t, "2024-05-05"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetUpcomingExcludesInactive(t *testing.T) {
	plans := []models.CarePlan{
		{ID: 1, UserID: 1, PlantID: 1, CareTypeID: 1, StartDate: date(t, "2020-01-01"), FrequencyDays: 7, Active: false},
	}
	items, err := testScheduler(plans).GetUpcoming(1, date(t, "2024-05-05"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetUpcomingIdempotent(t *testing.T) {
	plans := []models.CarePlan{
		{ID: 1, UserID: 1, PlantID: 1, CareTypeID: 1, StartDate: date(t, "2024-01-01"), FrequencyDays: 7, Active: true},
		{ID: 2, UserID: 1, PlantID: 2, CareTypeID: 2, StartDate: date(t, "2024-02-01"), FrequencyDays: 3, Active: true},
	}
	sched := testScheduler(plans)
	today := date(t, "2024-05-05")

	first, err := sched.GetUpcoming(1, today)
	require.NoError(t, err)
	second, err := sched.GetUpcoming(1, today)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetUpcomingStoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	sched := New(fakePlans{err: boom}, fakePlants{}, fakeCareTypes{})

	_, err := sched.GetUpcoming(1, date(t, "2024-05-05"))
	assert.ErrorIs(t, err, boom)
}

func TestGetUpcomingDanglingPlantIsError(t *testing.T) {
	plans := []models.CarePlan{
		{ID: 1, UserID: 1, PlantID: 99, CareTypeID: 1, StartDate: date(t, "2024-01-01"), FrequencyDays: 7, Active: true},
	}
	_, err := testScheduler(plans).GetUpcoming(1, date(t, "2024-05-05"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve plant 99")
}

func TestGetUpcomingDanglingCareTypeIsError(t *testing.T) {
	plans := []models.CarePlan{
		{ID: 1, UserID: 1, PlantID: 1, CareTypeID: 99, StartDate: date(t, "2024-01-01"), FrequencyDays: 7, Active: true},
	}
	_, err := testScheduler(plans).GetUpcoming(1, date(t, "2024-05-05"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve care type 99")
}

func TestGetUpcomingSkipsMalformedFrequency(t *testing.T) {
	plans := []models.CarePlan{
		{ID: 1, UserID: 1, PlantID: 1, CareTypeID: 1, StartDate: date(t, "2024-01-01"), FrequencyDays: 0, Active: true},
		{ID: 2, UserID: 1, PlantID: 2, CareTypeID: 2, StartDate: date(t, "2024-01-01"), FrequencyDays: 7, Active: true},
	}
	items, err := testScheduler(plans).GetUpcoming(1, date(t, "2024-01-15"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].PlantID)
}

func TestGetUpcomingIgnoresOtherUsers(t *testing.T) {
	plans := []models.CarePlan{
		{ID: 1, UserID: 2, PlantID: 1, CareTypeID: 1, StartDate: date(t, "2024-01-01"), FrequencyDays: 7, Active: true},
	}
	items, err := testScheduler(plans).GetUpcoming(1, date(t, "2024-01-15"))
	require.NoError(t, err)
	assert.Empty(t, items)
}
