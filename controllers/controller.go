package controllers

import (
	"plantkeeper/config"

	"github.com/gin-gonic/gin"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}
