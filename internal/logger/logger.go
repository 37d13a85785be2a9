package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/config"
)

// New returns a production logger in production and a development logger otherwise.
// Debug enables debug level in production as well.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		zcfg := zap.NewProductionConfig()
		if cfg.Debug {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		return zcfg.Build()
	}

	return zap.NewDevelopment()
}
