package controllers

import (
	"fmt"
	"net/http"
	"strings"

	dbpkg "plantkeeper/db"
	"plantkeeper/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ctxUserKey = "auth_user"

// AuthRequired validates the Bearer token and loads the user from DB into
// the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		raw := strings.TrimSpace(h[len("Bearer "):])

		userID, ok := parseToken(raw)
		if !ok {
			RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db not configured in context", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			RespondError(c, "user not found", http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// GetUserLogged returns the user loaded by AuthRequired.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// parseToken verifies the HS256 signature and expiry, returning the subject.
func parseToken(raw string) (int64, bool) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(conf.Security.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, false
	}
	return int64(sub), true
}
