package models

import "time"

// Species holds catalog metadata shared by all users.
// PerenualID references the external Perenual plant catalog, when known.
type Species struct {
	ID                int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CommonName        string     `gorm:"not null" json:"common_name" form:"common_name"`
	ScientificName    string     `gorm:"default:''" json:"scientific_name" form:"scientific_name"`
	Sunlight          string     `gorm:"default:''" json:"sunlight" form:"sunlight"`
	WaterRequirements string     `gorm:"default:''" json:"water_requirements" form:"water_requirements"`
	PerenualID        *int64     `json:"perenual_id" form:"perenual_id"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}
