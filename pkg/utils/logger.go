package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// InitLogger configures the global logger from APP_ENV / LOG_LEVEL /
// LOG_DIR. Production logs JSON to LOG_DIR/pennywise.log; anything else
// logs human-readable text to stdout.
func InitLogger() {
	Logger.SetReportCaller(true)

	callerFile := func(f *runtime.Frame) (string, string) {
		return "", filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
	}

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		Logger.SetLevel(logrus.DebugLevel)
	case "warn":
		Logger.SetLevel(logrus.WarnLevel)
	case "error":
		Logger.SetLevel(logrus.ErrorLevel)
	default:
		Logger.SetLevel(logrus.InfoLevel)
	}

	if os.Getenv("APP_ENV") != "production" {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			CallerPrettyfier: callerFile,
		})
		Logger.Out = os.Stdout
		return
	}

	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat:  "2006-01-02T15:04:05Z07:00",
		CallerPrettyfier: callerFile,
	})

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		Logger.Out = os.Stdout
		Logger.WithError(err).Warn("Failed to create logs directory, using stdout instead")
		return
	}

	file, err := os.OpenFile(filepath.Join(logDir, "pennywise.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger.Out = os.Stdout
		Logger.WithError(err).Warn("Failed to log to file, using stdout instead")
		return
	}
	Logger.Out = file
}
