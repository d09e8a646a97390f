package models

import (
	"plantkeeper/tools"
	"time"
)

// User represents a registered account. Every other entity hangs off a user
// directly (plants, care plans, custom care types) or through a plant.
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Username  string     `gorm:"not null;unique" json:"username" form:"username"`
	Email     string     `gorm:"not null;unique" json:"email" form:"email"`
	Password  string     `gorm:"not null" json:"password,omitempty" form:"password"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Username == "" {
		return "username"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	}
	return ""
}
