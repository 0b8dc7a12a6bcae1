package logger

import (
	"go.uber.org/zap"

	"github.com/almasov/flashdeck/internal/config"
)

// New builds the application logger: production encoding for production
// environments, human-readable development output otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
