package controllers

import (
	"net/http"
	"time"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type CreatePlantRequest struct {
	Nickname    string `json:"nickname" form:"nickname"`
	SpeciesID   *int64 `json:"species_id" form:"species_id"`
	Location    string `json:"location" form:"location"`
	DateAdded   string `json:"date_added" form:"date_added"`
	LastWatered string `json:"last_watered" form:"last_watered"`
}

type UpdatePlantRequest struct {
	Nickname    *string `json:"nickname"`
	SpeciesID   *int64  `json:"species_id"`
	Location    *string `json:"location"`
	DateAdded   *string `json:"date_added"`
	LastWatered *string `json:"last_watered"`
}

func serializePlant(plant models.Plant) gin.H {
	return gin.H{
		"id":           plant.ID,
		"user_id":      plant.UserID,
		"species_id":   plant.SpeciesID,
		"nickname":     plant.Nickname,
		"location":     plant.Location,
		"date_added":   formatDatePtr(plant.DateAdded),
		"last_watered": formatDatePtr(plant.LastWatered),
	}
}

// getOwnedPlant loads the plant and enforces ownership. It writes the error
// response itself when the plant is missing or owned by somebody else.
func getOwnedPlant(c *gin.Context, db *gorm.DB, plantID int64, userID int64) (*models.Plant, bool) {
	var plant models.Plant
	if err := db.First(&plant, plantID).Error; err != nil {
		RespondError(c, "plant not found", http.StatusNotFound)
		return nil, false
	}
	if plant.UserID != userID {
		RespondError(c, "unauthorized access to this plant", http.StatusForbidden)
		return nil, false
	}
	return &plant, true
}

// GET /api/plants
func GetPlants(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var plants []models.Plant
	if err := db.Where("user_id = ?", user.ID).Order("id asc").Find(&plants).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]gin.H, 0, len(plants))
	for _, plant := range plants {
		out = append(out, serializePlant(plant))
	}
	RespondSuccess(c, gin.H{"plants": out})
}

// GET /api/plants/:id
func GetPlantByID(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	plant, ok := getOwnedPlant(c, db, id, user.ID)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"plant": serializePlant(*plant)})
}

// POST /api/plants
func CreatePlant(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreatePlantRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Nickname == "" {
		RespondError(c, "nickname is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if req.SpeciesID != nil {
		if err := db.First(&models.Species{}, *req.SpeciesID).Error; err != nil {
			RespondError(c, "species not found", http.StatusNotFound)
			return
		}
	}

	plant := models.Plant{
		UserID:    user.ID,
		SpeciesID: req.SpeciesID,
		Nickname:  req.Nickname,
		Location:  req.Location,
	}

	if req.DateAdded != "" {
		t, err := ParseDate(req.DateAdded)
		if err != nil {
			RespondError(c, "invalid date_added format, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		plant.DateAdded = &t
	} else {
		now := time.Now()
		plant.DateAdded = &now
	}
	if req.LastWatered != "" {
		t, err := ParseDate(req.LastWatered)
		if err != nil {
			RespondError(c, "invalid last_watered format, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		plant.LastWatered = &t
	}

	if err := db.Create(&plant).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"plant": serializePlant(plant)})
}

// PATCH /api/plants/:id
func UpdatePlant(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdatePlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	plant, ok := getOwnedPlant(c, db, id, user.ID)
	if !ok {
		return
	}

	if req.Nickname != nil {
		if *req.Nickname == "" {
			RespondError(c, "nickname cannot be empty", http.StatusBadRequest)
			return
		}
		plant.Nickname = *req.Nickname
	}
	if req.SpeciesID != nil {
		if err := db.First(&models.Species{}, *req.SpeciesID).Error; err != nil {
			RespondError(c, "species not found", http.StatusNotFound)
			return
		}
		plant.SpeciesID = req.SpeciesID
	}
	if req.Location != nil {
		plant.Location = *req.Location
	}
	if req.DateAdded != nil {
		t, err := ParseDate(*req.DateAdded)
		if err != nil {
			RespondError(c, "invalid date_added format, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		plant.DateAdded = &t
	}
	if req.LastWatered != nil {
		t, err := ParseDate(*req.LastWatered)
		if err != nil {
			RespondError(c, "invalid last_watered format, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		plant.LastWatered = &t
	}

	if err := db.Save(plant).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"plant": serializePlant(*plant)})
}

// DELETE /api/plants/:id
//
// Cascades to the plant's care logs and care plans.
func DeletePlant(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if _, ok := getOwnedPlant(c, db, id, user.ID); !ok {
		return
	}

	tx := db.Begin()
	if err := tx.Delete(&models.CareLog{}, "plant_id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Delete(&models.CarePlan{}, "plant_id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Delete(&models.Plant{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}
