package logger

import (
	"log/slog"
	"time"
)

// slowCommandThreshold marks executions worth a warning even when they
// succeed.
const slowCommandThreshold = 2 * time.Second

// LogCommandStart logs the beginning of one prefix command execution.
func LogCommandStart(name string, attrs ...any) {
	base := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
	}
	slog.Info("Command started", append(base, attrs...)...)
}

// LogCommandDone logs the outcome of one prefix command execution, picking
// the failed, slow or success status from the result.
func LogCommandDone(name string, took time.Duration, err error, attrs ...any) {
	base := append([]any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.Duration("took", took),
	}, attrs...)

	switch {
	case err != nil:
		slog.Error("Command failed", append(base,
			slog.Any("error", err),
			slog.String("status", "failed"))...)
	case took > slowCommandThreshold:
		slog.Warn("Command executed slowly", append(base,
			slog.String("status", "slow"))...)
	default:
		slog.Info("Command completed", append(base,
			slog.String("status", "success"))...)
	}
}

// LogSystem logs system events.
func LogSystem(msg string, attrs ...any) {
	base := []any{slog.String("type", "sys")}
	slog.Info(msg, append(base, attrs...)...)
}

// LogError logs error events.
func LogError(msg string, err error, attrs ...any) {
	base := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(base, attrs...)...)
}
