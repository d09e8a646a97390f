// Package scheduler derives the "what care is due next" forecast from
// stored care plans. It is a pure computation over data fetched through the
// store interfaces: no writes, no clock access (the reference date is always
// an explicit parameter), safe for concurrent use.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"plantkeeper/logger"
	"plantkeeper/models"
)

const dateLayout = "2006-01-02"

// ErrInvalidFrequency marks a care plan whose frequency_days is below 1.
// The write path rejects these, so hitting one here means bad data.
var ErrInvalidFrequency = errors.New("frequency_days must be >= 1")

// CarePlanStore answers "all active plans for user X".
type CarePlanStore interface {
	ActiveByUser(userID int64) ([]models.CarePlan, error)
}

// PlantStore resolves plant display metadata.
type PlantStore interface {
	Get(id int64) (*models.Plant, error)
}

// CareTypeStore resolves care type display metadata.
type CareTypeStore interface {
	Get(id int64) (*models.CareType, error)
}

// UpcomingCareItem is one computed entry of the forecast. It is never
// persisted; a fresh list is derived on every call.
type UpcomingCareItem struct {
	PlantID       int64  `json:"plant_id"`
	PlantNickname string `json:"plant_nickname"`
	CareType      string `json:"care_type"`
	Note          string `json:"note"`
	DueDate       string `json:"due_date"` // YYYY-MM-DD
	DaysUntilDue  int    `json:"days_until_due"`

	planID int64
	due    time.Time
}

// Due returns the computed due date as a calendar date.
func (i UpcomingCareItem) Due() time.Time {
	return i.due
}

// DateOf truncates t to its calendar date, normalized to UTC so that day
// arithmetic is immune to DST.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)) / (24 * time.Hour))
}

// ComputeNextDueDate returns the first occurrence of the plan's cycle
// strictly after today. A plan that starts in the future is due on its start
// date. A plan due exactly today is pushed to the next cycle: for a started
// plan the result is always > today, so days_until_due is never 0 once the
// start date has passed.
func ComputeNextDueDate(startDate time.Time, frequencyDays int, today time.Time) (time.Time, error) {
	if frequencyDays < 1 {
		return time.Time{}, ErrInvalidFrequency
	}

	start := DateOf(startDate)
	elapsed := daysBetween(startDate, today)
	if elapsed < 0 {
		return start, nil
	}

	cycles := elapsed / frequencyDays
	return start.AddDate(0, 0, (cycles+1)*frequencyDays), nil
}

// Scheduler joins computed due dates with plant and care type names.
type Scheduler struct {
	plans     CarePlanStore
	plants    PlantStore
	careTypes CareTypeStore
}

func New(plans CarePlanStore, plants PlantStore, careTypes CareTypeStore) *Scheduler {
	return &Scheduler{plans: plans, plants: plants, careTypes: careTypes}
}

// GetUpcoming computes the due date of every active plan the user owns and
// returns them soonest first; equal due dates are ordered by plan ID. An
// empty result is valid and means nothing is scheduled.
//
// Store failures and dangling plant/care-type references are returned as
// errors rather than hidden: a missing reference is an integrity fault in
// the store layer, not a user mistake. Plans with a malformed frequency are
// skipped with a warning instead of aborting the whole forecast.
func (s *Scheduler) GetUpcoming(userID int64, today time.Time) ([]UpcomingCareItem, error) {
	plans, err := s.plans.ActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]UpcomingCareItem, 0, len(plans))
	for _, plan := range plans {
		due, err := ComputeNextDueDate(plan.StartDate, plan.FrequencyDays, today)
		if err != nil {
			logger.Log.Warnf("skipping care plan %d: %v", plan.ID, err)
			continue
		}

		plant, err := s.plants.Get(plan.PlantID)
		if err != nil {
			return nil, fmt.Errorf("care plan %d: resolve plant %d: %w", plan.ID, plan.PlantID, err)
		}
		careType, err := s.careTypes.Get(plan.CareTypeID)
		if err != nil {
			return nil, fmt.Errorf("care plan %d: resolve care type %d: %w", plan.ID, plan.CareTypeID, err)
		}

		items = append(items, UpcomingCareItem{
			PlantID:       plan.PlantID,
			PlantNickname: plant.Nickname,
			CareType:      careType.Name,
			Note:          plan.Note,
			DueDate:       due.Format(dateLayout),
			DaysUntilDue:  daysBetween(today, due),
			planID:        plan.ID,
			due:           due,
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		if !items[a].due.Equal(items[b].due) {
			return items[a].due.Before(items[b].due)
		}
		return items[a].planID < items[b].planID
	})

	return items, nil
}
