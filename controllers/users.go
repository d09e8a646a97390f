package controllers

import (
	"net/http"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"
	"plantkeeper/tools"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UpdateUserRequest carries the fields a user may change on their own
// account. Pointer fields distinguish "absent" from "set to zero value".
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// POST /api/users
func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if missing := user.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "invalid email", http.StatusBadRequest)
		return
	}

	var existing models.User
	if err := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existing).Error; err == nil {
		RespondError(c, "user already exists", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	user.Password = string(hash)

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}

// PUT /api/user
func UpdateCurrentUser(c *gin.Context) {
	logged, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.First(&user, logged.ID).Error; err != nil {
		RespondError(c, "user not found", http.StatusNotFound)
		return
	}

	if req.Username != nil {
		if *req.Username == "" {
			RespondError(c, "username cannot be empty", http.StatusBadRequest)
			return
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		if !tools.ValidateEmail(*req.Email) {
			RespondError(c, "invalid email", http.StatusBadRequest)
			return
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if failed := tools.CheckPassword(*req.Password); failed != "" {
			RespondError(c, "invalid password", http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
		user.Password = string(hash)
	}

	if err := db.Save(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}

// DELETE /api/user
//
// Removes the account and everything hanging off it: plants, their care
// logs, care plans and custom care types.
func DeleteCurrentUser(c *gin.Context) {
	logged, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()

	var plantIDs []int64
	if err := tx.Model(&models.Plant{}).Where("user_id = ?", logged.ID).Pluck("id", &plantIDs).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(plantIDs) > 0 {
		if err := tx.Delete(&models.CareLog{}, "plant_id IN (?)", plantIDs).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Delete(&models.CarePlan{}, "user_id = ?", logged.ID).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Delete(&models.Plant{}, "user_id = ?", logged.ID).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Delete(&models.CareType{}, "user_id = ?", logged.ID).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Delete(&models.User{}, "id = ?", logged.ID).Error; err != nil {
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
