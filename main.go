package main

import (
	"os"
	"strings"

	"plantkeeper/config"
	"plantkeeper/controllers"
	dbpkg "plantkeeper/db"
	"plantkeeper/logger"
	"plantkeeper/router"
	"plantkeeper/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg := config.Get(configPath)

	logger.Init(cfg)
	dbpkg.SetConfigurations(cfg)
	controllers.SetConfigurations(cfg)

	database, err := dbpkg.Connect()
	if err != nil {
		logger.Log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if strings.ToLower(cfg.Environment) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r, cfg)

	reminders, err := workers.StartCareReminders(database, cfg.ReminderCronSpec)
	if err != nil {
		logger.Log.Fatalf("failed to start care reminders: %v", err)
	}
	defer reminders.Stop()

	logger.Log.Infof("plantkeeper listening on :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		logger.Log.Fatal(err)
	}
}
