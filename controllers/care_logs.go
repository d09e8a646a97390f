package controllers

import (
	"net/http"
	"time"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"

	"github.com/gin-gonic/gin"
)

type CreateCareLogRequest struct {
	PlantID    int64  `json:"plant_id" form:"plant_id"`
	CareTypeID int64  `json:"care_type_id" form:"care_type_id"`
	Note       string `json:"note" form:"note"`
	CareDate   string `json:"care_date" form:"care_date"`
}

type UpdateCareLogRequest struct {
	CareTypeID *int64  `json:"care_type_id"`
	Note       *string `json:"note"`
	CareDate   *string `json:"care_date"`
}

func serializeCareLog(log models.CareLog) gin.H {
	return gin.H{
		"id":           log.ID,
		"plant_id":     log.PlantID,
		"care_type_id": log.CareTypeID,
		"note":         log.Note,
		"care_date":    formatDate(log.CareDate),
	}
}

// getOwnedCareLog loads the log and checks the caller owns its plant.
func getOwnedCareLog(c *gin.Context, logID int64, userID int64) (*models.CareLog, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return nil, false
	}

	var careLog models.CareLog
	if err := db.First(&careLog, logID).Error; err != nil {
		RespondError(c, "care log not found", http.StatusNotFound)
		return nil, false
	}
	if _, ok := getOwnedPlant(c, db, careLog.PlantID, userID); !ok {
		return nil, false
	}
	return &careLog, true
}

// POST /api/plant-care
func CreateCareLog(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateCareLogRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PlantID <= 0 || req.CareTypeID <= 0 {
		RespondError(c, "the plant_id and care_type_id fields are required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if _, ok := getOwnedPlant(c, db, req.PlantID, user.ID); !ok {
		return
	}

	var careType models.CareType
	if err := db.First(&careType, req.CareTypeID).Error; err != nil {
		RespondError(c, "care type not found", http.StatusNotFound)
		return
	}
	if !careTypeVisible(careType, user.ID) {
		RespondError(c, "unauthorized access to this care type", http.StatusForbidden)
		return
	}

	careLog := models.CareLog{
		PlantID:    req.PlantID,
		CareTypeID: req.CareTypeID,
		Note:       req.Note,
		CareDate:   time.Now(),
	}
	if req.CareDate != "" {
		t, err := ParseDate(req.CareDate)
		if err != nil {
			RespondError(c, "invalid care_date format, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		careLog.CareDate = t
	}

	if err := db.Create(&careLog).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"care_log": serializeCareLog(careLog)})
}

// GET /api/plant-care/plant/:plantId
func GetCareLogsByPlant(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	plantID, ok := ParamID(c, "plantId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if _, ok := getOwnedPlant(c, db, plantID, user.ID); !ok {
		return
	}

	var careLogs []models.CareLog
	if err := db.Where("plant_id = ?", plantID).Order("care_date desc").Find(&careLogs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]gin.H, 0, len(careLogs))
	for _, log := range careLogs {
		out = append(out, serializeCareLog(log))
	}
	RespondSuccess(c, gin.H{"care_logs": out})
}

// GET /api/plant-care/logs/:id
func GetCareLogByID(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	careLog, ok := getOwnedCareLog(c, id, user.ID)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"care_log": serializeCareLog(*careLog)})
}

// PATCH /api/plant-care/logs/:id
func UpdateCareLog(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateCareLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	careLog, ok := getOwnedCareLog(c, id, user.ID)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)

	if req.CareTypeID != nil {
		var careType models.CareType
		if err := db.First(&careType, *req.CareTypeID).Error; err != nil {
			RespondError(c, "care type not found", http.StatusNotFound)
			return
		}
		if !careTypeVisible(careType, user.ID) {
			RespondError(c, "unauthorized access to this care type", http.StatusForbidden)
			return
		}
		careLog.CareTypeID = *req.CareTypeID
	}
	if req.Note != nil {
		careLog.Note = *req.Note
	}
	if req.CareDate != nil {
		t, err := ParseDate(*req.CareDate)
		if err != nil {
			RespondError(c, "invalid care_date format, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		careLog.CareDate = t
	}

	if err := db.Save(careLog).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"care_log": serializeCareLog(*careLog)})
}

// DELETE /api/plant-care/logs/:id
func DeleteCareLog(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	if _, ok := getOwnedCareLog(c, id, user.ID); !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if err := db.Delete(&models.CareLog{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
