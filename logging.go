package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const logLevelEnv = "THIRDPERSON_LOG_LEVEL"

// resolveLogLevel picks the flag value, then the environment, then info.
func resolveLogLevel(flagValue, envValue string) (slog.Level, error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" {
		raw = strings.TrimSpace(envValue)
	}
	if raw == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}

func newLogger(out io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}
