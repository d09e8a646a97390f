// Package store provides the gorm-backed implementations of the scheduler's
// store interfaces.
package store

import (
	"plantkeeper/models"

	"github.com/jinzhu/gorm"
)

// CarePlans implements scheduler.CarePlanStore.
type CarePlans struct {
	DB *gorm.DB
}

func (s CarePlans) ActiveByUser(userID int64) ([]models.CarePlan, error) {
	var plans []models.CarePlan
	err := s.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Order("id asc").
		Find(&plans).Error
	return plans, err
}

// Plants implements scheduler.PlantStore.
type Plants struct {
	DB *gorm.DB
}

func (s Plants) Get(id int64) (*models.Plant, error) {
	var plant models.Plant
	if err := s.DB.First(&plant, id).Error; err != nil {
		return nil, err
	}
	return &plant, nil
}

// CareTypes implements scheduler.CareTypeStore.
type CareTypes struct {
	DB *gorm.DB
}

func (s CareTypes) Get(id int64) (*models.CareType, error) {
	var careType models.CareType
	if err := s.DB.First(&careType, id).Error; err != nil {
		return nil, err
	}
	return &careType, nil
}
