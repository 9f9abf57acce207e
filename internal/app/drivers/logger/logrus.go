package logger

import (
	"edulink-service/internal/app/config"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the bootstrap logger used before the zap logger is
// available (driver connections, fatal startup errors).
func NewLogger(internalConfig *config.InternalConfig) *logrus.Logger {
	log := logrus.New()
	if internalConfig.App.Env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
