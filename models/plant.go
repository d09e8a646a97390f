package models

import "time"

// Plant is a single houseplant owned by a user.
type Plant struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      int64      `gorm:"not null;index" json:"user_id"`
	SpeciesID   *int64     `gorm:"index" json:"species_id" form:"species_id"`
	Nickname    string     `gorm:"not null" json:"nickname" form:"nickname"`
	Location    string     `gorm:"default:''" json:"location" form:"location"`
	DateAdded   *time.Time `gorm:"type:date" json:"date_added"`
	LastWatered *time.Time `gorm:"type:date" json:"last_watered"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
