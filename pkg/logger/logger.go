package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Production JSON output by default,
// human-readable console output when APP_ENV=development.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	return cfg.Build()
}
