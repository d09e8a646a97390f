package logger

import (
	"os"
	"strings"

	"plantkeeper/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance.
var Log = logrus.New()

// Init configures the global logger from application configuration.
func Init(cfg config.Configuration) {
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("invalid log level %q, defaulting to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(cfg.Environment) == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}
