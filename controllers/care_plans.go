package controllers

import (
	"net/http"
	"time"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"
	"plantkeeper/scheduler"
	"plantkeeper/store"

	"github.com/gin-gonic/gin"
)

type CreateCarePlanRequest struct {
	PlantID    int64  `json:"plant_id" form:"plant_id"`
	CareTypeID int64  `json:"care_type_id" form:"care_type_id"`
	StartDate  string `json:"start_date" form:"start_date"`
	Note       string `json:"note" form:"note"`

	// Pointers so that "absent" and "explicit zero/false" stay apart:
	// a missing frequency defaults to 7, an explicit 0 is rejected.
	FrequencyDays *int  `json:"frequency_days" form:"frequency_days"`
	Active        *bool `json:"active" form:"active"`
}

// UpdateCarePlanRequest covers the mutable care plan fields. The plant and
// care type references are fixed at creation.
type UpdateCarePlanRequest struct {
	StartDate     *string `json:"start_date"`
	FrequencyDays *int    `json:"frequency_days"`
	Note          *string `json:"note"`
	Active        *bool   `json:"active"`
}

func serializeCarePlan(plan models.CarePlan) gin.H {
	return gin.H{
		"id":             plan.ID,
		"user_id":        plan.UserID,
		"plant_id":       plan.PlantID,
		"care_type_id":   plan.CareTypeID,
		"start_date":     formatDate(plan.StartDate),
		"frequency_days": plan.FrequencyDays,
		"note":           plan.Note,
		"active":         plan.Active,
	}
}

// POST /api/plant-care/care-plans
func CreateCarePlan(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateCarePlanRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PlantID <= 0 || req.CareTypeID <= 0 {
		RespondError(c, "the plant_id and care_type_id fields are required", http.StatusBadRequest)
		return
	}

	frequencyDays := 7
	if req.FrequencyDays != nil {
		if *req.FrequencyDays < 1 {
			RespondError(c, "frequency_days must be at least 1", http.StatusBadRequest)
			return
		}
		frequencyDays = *req.FrequencyDays
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

	startDate := scheduler.DateOf(time.Now())
	if req.StartDate != "" {
		t, err := ParseDate(req.StartDate)
		if err != nil {
			RespondError(c, "invalid start_date format, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		startDate = t
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	plan := models.CarePlan{
		UserID:        user.ID,
		PlantID:       req.PlantID,
		CareTypeID:    req.CareTypeID,
		StartDate:     startDate,
		FrequencyDays: frequencyDays,
		Note:          req.Note,
		Active:        active,
	}
	if err := db.Create(&plan).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"care_plan": serializeCarePlan(plan)})
}

// GET /api/plant-care/care-plans
func GetUserCarePlans(c *gin.Context) {
	listCarePlans(c, false)
}

// GET /api/plant-care/care-plans/active
func GetActiveCarePlans(c *gin.Context) {
	listCarePlans(c, true)
}

func listCarePlans(c *gin.Context, activeOnly bool) {
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

	query := db.Where("user_id = ?", user.ID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var plans []models.CarePlan
	if err := query.Order("id asc").Find(&plans).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]gin.H, 0, len(plans))
	for _, plan := range plans {
		out = append(out, serializeCarePlan(plan))
	}
	RespondSuccess(c, out)
}

// GET /api/plant-care/care-plans/upcoming
//
// An empty forecast maps to 404 here; that mirrors the original API and is a
// transport-layer policy, not a scheduler error.
func GetUpcomingCarePlans(c *gin.Context) {
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

	sched := scheduler.New(
		store.CarePlans{DB: db},
		store.Plants{DB: db},
		store.CareTypes{DB: db},
	)

	items, err := sched.GetUpcoming(user.ID, time.Now())
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		RespondError(c, "unable to find any upcoming care plans", http.StatusNotFound)
		return
	}
	RespondSuccess(c, items)
}

// getOwnedCarePlan loads the plan and enforces ownership.
func getOwnedCarePlan(c *gin.Context, planID int64, userID int64) (*models.CarePlan, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return nil, false
	}

	var plan models.CarePlan
	if err := db.First(&plan, planID).Error; err != nil {
		RespondError(c, "care plan not found", http.StatusNotFound)
		return nil, false
	}
	if plan.UserID != userID {
		RespondError(c, "unauthorized access to this care plan", http.StatusForbidden)
		return nil, false
	}
	return &plan, true
}

// PATCH /api/plant-care/care-plans/:id
func UpdateCarePlan(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateCarePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	plan, ok := getOwnedCarePlan(c, id, user.ID)
	if !ok {
		return
	}

	if req.StartDate != nil {
		t, err := ParseDate(*req.StartDate)
		if err != nil {
			RespondError(c, "invalid start_date format, use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		plan.StartDate = t
	}
	if req.FrequencyDays != nil {
		if *req.FrequencyDays < 1 {
			RespondError(c, "frequency_days must be at least 1", http.StatusBadRequest)
			return
		}
		plan.FrequencyDays = *req.FrequencyDays
	}
	if req.Note != nil {
		plan.Note = *req.Note
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	db := dbpkg.DBInstance(c)
	if err := db.Save(plan).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"care_plan": serializeCarePlan(*plan)})
}

// DELETE /api/plant-care/care-plans/:id
func DeleteCarePlan(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	if _, ok := getOwnedCarePlan(c, id, user.ID); !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if err := db.Delete(&models.CarePlan{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
