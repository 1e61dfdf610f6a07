package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New() *zap.SugaredLogger {
	var (
		log *zap.Logger
		err error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	if strings.ToLower(os.Getenv("PULSE_ENV")) == "dev" {
		log, err = zap.NewDevelopment(opts...)
	} else {
		opts = append(opts, zap.Fields(zap.Field{
			Key:    "PULSE_ENV",
			Type:   zapcore.StringType,
			String: os.Getenv("PULSE_ENV"),
		}))
		log, err = zap.NewProduction(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return log.Sugar()
}

type contextKey struct{}

// ContextKey carries the request/cycle scoped logger.
var ContextKey = contextKey{}

func ToContext(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, log)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	log, ok := ctx.Value(ContextKey).(*zap.SugaredLogger)
	if !ok {
		return New()
	}
	return log
}

func init() {
	log := New()
	zap.ReplaceGlobals(log.Desugar())
}
