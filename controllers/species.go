package controllers

import (
	"net/http"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"

	"github.com/gin-gonic/gin"
)

// UpdateSpeciesRequest carries the editable species fields.
type UpdateSpeciesRequest struct {
	CommonName        *string `json:"common_name"`
	ScientificName    *string `json:"scientific_name"`
	Sunlight          *string `json:"sunlight"`
	WaterRequirements *string `json:"water_requirements"`
	PerenualID        *int64  `json:"perenual_id"`
}

// GET /api/species
func GetSpecies(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var species []models.Species
	if err := db.Order("id asc").Find(&species).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"species": species})
}

// GET /api/species/:id
func GetSpeciesByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var species models.Species
	if err := db.First(&species, id).Error; err != nil {
		RespondError(c, "species not found", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"species": species})
}

// POST /api/species
func CreateSpecies(c *gin.Context) {
	var species models.Species
	if err := c.Bind(&species); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if species.CommonName == "" {
		RespondError(c, "common_name is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&species).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"species": species})
}

// PUT /api/species/:id
func UpdateSpecies(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateSpeciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var species models.Species
	if err := db.First(&species, id).Error; err != nil {
		RespondError(c, "species not found", http.StatusNotFound)
		return
	}

	if req.CommonName != nil {
		if *req.CommonName == "" {
			RespondError(c, "common_name cannot be empty", http.StatusBadRequest)
			return
		}
		species.CommonName = *req.CommonName
	}
	if req.ScientificName != nil {
		species.ScientificName = *req.ScientificName
	}
	if req.Sunlight != nil {
		species.Sunlight = *req.Sunlight
	}
	if req.WaterRequirements != nil {
		species.WaterRequirements = *req.WaterRequirements
	}
	if req.PerenualID != nil {
		species.PerenualID = req.PerenualID
	}

	if err := db.Save(&species).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"species": species})
}

// DELETE /api/species/:id
func DeleteSpecies(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	// Plants referencing the species keep working; the reference goes NULL.
	if err := db.Model(&models.Plant{}).Where("species_id = ?", id).Update("species_id", nil).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := db.Delete(&models.Species{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"status": "deleted"})
}
