package controllers

import (
	"net/http"
	"time"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /api/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email and password are required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	signed, err := signToken(user)
	if err != nil {
		RespondError(c, "failed to sign token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}

func signToken(user models.User) (string, error) {
	validity := time.Duration(conf.Security.TokenValidDays) * 24 * time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(validity).Unix(),
	})
	return token.SignedString([]byte(conf.Security.JwtSecret))
}
