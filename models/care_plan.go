package models

import "time"

// CarePlan is a recurrence rule for one (plant, care type) pair: the action
// is due on StartDate and every FrequencyDays after that. Inactive plans are
// kept for history but never scheduled.
//
// FrequencyDays >= 1 is enforced on the write path; the scheduler treats it
// as a precondition.
type CarePlan struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID        int64      `gorm:"not null;index" json:"user_id"`
	PlantID       int64      `gorm:"not null;index" json:"plant_id"`
	CareTypeID    int64      `gorm:"not null;index" json:"care_type_id"`
	StartDate     time.Time  `gorm:"type:date;not null" json:"start_date"`
	FrequencyDays int        `gorm:"not null" json:"frequency_days"`
	Note          string     `gorm:"type:text" json:"note"`
	Active        bool       `gorm:"not null;default:true;index" json:"active"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}
