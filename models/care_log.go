package models

import "time"

// CareLog records a single past care action performed on a plant,
// independent of any recurrence rule.
type CareLog struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	PlantID    int64      `gorm:"not null;index" json:"plant_id"`
	CareTypeID int64      `gorm:"not null;index" json:"care_type_id"`
	Note       string     `gorm:"type:text" json:"note" form:"note"`
	CareDate   time.Time  `gorm:"type:date;not null" json:"care_date"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
