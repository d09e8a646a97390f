package models

import "time"

// CareType names a kind of care action (watering, fertilizing, ...).
// System defaults have a NULL UserID and are visible to everyone; rows with
// a UserID are custom types owned by that user.
type CareType struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      *int64     `gorm:"index" json:"user_id"`
	Name        string     `gorm:"not null" json:"name" form:"name"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// IsDefault reports whether this is a system-wide care type.
func (ct CareType) IsDefault() bool {
	return ct.UserID == nil
}
