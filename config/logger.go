package config

import (
	"log"
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger

// InitLogger builds the global logger. LOG_MODE=development switches to the
// human-readable console encoder.
func InitLogger() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("LOG_MODE") == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	Log = l
}
