package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init configures the global zap logger for the given environment and
// installs it via zap.ReplaceGlobals.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)
	switch environment {
	case "production":
		l, err = zap.NewProduction()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to build zap logger: %w", err)
	}

	zap.ReplaceGlobals(l)
	return nil
}
