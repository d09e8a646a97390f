package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort     string `json:"api_port"`
	LogLevel    string `json:"log_level"`
	Environment string `json:"environment"` // "development" or "production"

	Database string `json:"database"` // "sqlite3" or "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		JwtSecret      string `json:"jwt_secret"`
		TokenValidDays int    `json:"token_valid_days"`
	} `json:"security"`

	// ReminderCronSpec controls the daily care digest job.
	ReminderCronSpec string `json:"reminder_cron_spec"`
}

// Get loads the JSON config file and applies defaults plus env overrides.
// The file is optional: with no file everything falls back to defaults,
// which is enough for a local sqlite3 setup.
func Get(path string) Configuration {
	var c Configuration

	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(b, &c); err != nil {
			log.Fatal(err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatal(err)
	}

	if c.ApiPort == "" {
		c.ApiPort = getenv("PORT", "8080")
	}
	if c.LogLevel == "" {
		c.LogLevel = getenv("LOG_LEVEL", "info")
	}
	if c.Environment == "" {
		c.Environment = getenv("ENVIRONMENT", "development")
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.TokenValidDays <= 0 {
		c.Security.TokenValidDays = 1
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		c.Security.JwtSecret = s
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.ReminderCronSpec == "" {
		c.ReminderCronSpec = "0 8 * * *"
	}

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
