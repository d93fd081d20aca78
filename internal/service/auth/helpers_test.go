package auth_test

import (
	"log/slog"

	"github.com/optimal-labs/optimal-api/internal/platform/logger"
)

func newCaptureLogger() (*slog.Logger, *logger.LogBuffer) {
	return logger.NewCaptureLogger()
}
