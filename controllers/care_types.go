package controllers

import (
	"net/http"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"

	"github.com/gin-gonic/gin"
)

type CreateCareTypeRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

type UpdateCareTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GET /api/care-types/default
func GetDefaultCareTypes(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var careTypes []models.CareType
	if err := db.Where("user_id IS NULL").Order("id asc").Find(&careTypes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"care_types": careTypes})
}

// GET /api/care-types/user
func GetUserCareTypes(c *gin.Context) {
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

	var careTypes []models.CareType
	if err := db.Where("user_id = ?", user.ID).Order("id asc").Find(&careTypes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"care_types": careTypes})
}

// POST /api/care-types
func CreateCareType(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateCareTypeRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		RespondError(c, "name is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	careType := models.CareType{
		UserID:      &user.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := db.Create(&careType).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"care_type": careType})
}

// getOwnedCareType loads a care type and rejects defaults and foreign rows.
func getOwnedCareType(c *gin.Context, id int64, userID int64) (*models.CareType, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return nil, false
	}

	var careType models.CareType
	if err := db.First(&careType, id).Error; err != nil {
		RespondError(c, "care type not found", http.StatusNotFound)
		return nil, false
	}
	if careType.IsDefault() || *careType.UserID != userID {
		RespondError(c, "unauthorized access to this care type", http.StatusForbidden)
		return nil, false
	}
	return &careType, true
}

// PUT /api/care-types/:id
func UpdateCareType(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateCareTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	careType, ok := getOwnedCareType(c, id, user.ID)
	if !ok {
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			RespondError(c, "name cannot be empty", http.StatusBadRequest)
			return
		}
		careType.Name = *req.Name
	}
	if req.Description != nil {
		careType.Description = *req.Description
	}

	db := dbpkg.DBInstance(c)
	if err := db.Save(careType).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"care_type": careType})
}

// DELETE /api/care-types/:id
func DeleteCareType(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	if _, ok := getOwnedCareType(c, id, user.ID); !ok {
		return
	}

	db := dbpkg.DBInstance(c)

	// Refuse to orphan existing records that reference this type.
	var inUse int
	if err := db.Model(&models.CarePlan{}).Where("care_type_id = ?", id).Count(&inUse).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if inUse == 0 {
		if err := db.Model(&models.CareLog{}).Where("care_type_id = ?", id).Count(&inUse).Error; err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if inUse > 0 {
		RespondError(c, "care type is in use by care plans or care logs", http.StatusBadRequest)
		return
	}

	if err := db.Delete(&models.CareType{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}

// careTypeVisible reports whether the user may reference the care type:
// system defaults and the user's own custom types.
func careTypeVisible(careType models.CareType, userID int64) bool {
	return careType.IsDefault() || *careType.UserID == userID
}
