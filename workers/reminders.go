package workers

import (
	"time"

	"plantkeeper/logger"
	"plantkeeper/models"
	"plantkeeper/scheduler"
	"plantkeeper/store"

	"github.com/jinzhu/gorm"
	"github.com/robfig/cron/v3"
)

// StartCareReminders schedules the daily care digest job. The returned cron
// can be stopped on shutdown.
func StartCareReminders(db *gorm.DB, cronSpec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(cronSpec, func() { runCareDigest(db, time.Now()) }); err != nil {
		return nil, err
	}
	c.Start()
	logger.Log.Infof("care reminder digest scheduled (%s)", cronSpec)
	return c, nil
}

// runCareDigest logs, per user with active plans, how much care is coming up
// within the next day. Purely informational; no outbound delivery.
func runCareDigest(db *gorm.DB, now time.Time) {
	var userIDs []int64
	rows, err := db.Model(&models.CarePlan{}).
		Where("active = ?", true).
		Select("DISTINCT user_id").
		Rows()
	if err != nil {
		logger.Log.Errorf("care digest: list users: %v", err)
		return
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logger.Log.Errorf("care digest: scan user id: %v", err)
			return
		}
		userIDs = append(userIDs, id)
	}

	sched := scheduler.New(
		store.CarePlans{DB: db},
		store.Plants{DB: db},
		store.CareTypes{DB: db},
	)

	for _, userID := range userIDs {
		items, err := sched.GetUpcoming(userID, now)
		if err != nil {
			logger.Log.Errorf("care digest: user %d: %v", userID, err)
			continue
		}

		for _, item := range items {
			if item.DaysUntilDue > 1 {
				break // sorted soonest first
			}
			logger.Log.WithFields(map[string]any{
				"user_id":   userID,
				"plant":     item.PlantNickname,
				"care_type": item.CareType,
				"due_date":  item.DueDate,
			}).Info("care due soon")
		}
	}
}
