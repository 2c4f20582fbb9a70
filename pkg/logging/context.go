package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const loggerKey contextKey = iota

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithField returns a context whose logger carries key=value.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := FromContext(ctx).With().Interface(key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithSource tags the context logger with the source adapter ID.
func WithSource(ctx context.Context, source string) context.Context {
	logger := FromContext(ctx).With().Str("source", source).Logger()
	return WithLogger(ctx, &logger)
}

// WithStage tags the context logger with the pipeline stage.
func WithStage(ctx context.Context, stage string) context.Context {
	logger := FromContext(ctx).With().Str("stage", stage).Logger()
	return WithLogger(ctx, &logger)
}

// WithRunID tags the context logger with the ingestion run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	logger := FromContext(ctx).With().Str("run_id", runID).Logger()
	return WithLogger(ctx, &logger)
}
