package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"otaserve/internal/config"
)

const logLevelEnvKey = "OTASERVE_LOG_LEVEL"

type levelSource string

const (
	levelFromFlag    levelSource = "flag"
	levelFromEnv     levelSource = "env"
	levelFromConfig  levelSource = "config"
	levelFromDefault levelSource = "default"
)

// logOutput is where the CLI logger writes. Tests swap it out.
var logOutput io.Writer = os.Stderr

// configureLoggerForCLI installs the default slog logger. A bad --log-level is
// an error; a bad env or config value falls back to the default and returns a
// warning for the caller to print.
func configureLoggerForCLI(flagLevel, configLevel string) (string, error) {
	envLevel := os.Getenv(logLevelEnvKey)
	raw, source := pickLogLevel(flagLevel, envLevel, configLevel)

	level, err := config.ParseLogLevel(raw)
	if err == nil {
		slog.SetDefault(newLogger(level))
		return "", nil
	}

	var warning string
	switch source {
	case levelFromFlag:
		return "", fmt.Errorf("invalid --log-level %q", flagLevel)
	case levelFromEnv:
		warning = fmt.Sprintf("warning: invalid %s=%q; defaulting to %s", logLevelEnvKey, envLevel, config.DefaultLogLevel)
	case levelFromConfig:
		warning = fmt.Sprintf("warning: invalid log_level=%q; defaulting to %s", configLevel, config.DefaultLogLevel)
	}

	fallback, _ := config.ParseLogLevel(config.DefaultLogLevel)
	slog.SetDefault(newLogger(fallback))
	return warning, nil
}

// pickLogLevel applies flag > env > config precedence, skipping blank values.
func pickLogLevel(flagLevel, envLevel, configLevel string) (string, levelSource) {
	candidates := []struct {
		value  string
		source levelSource
	}{
		{flagLevel, levelFromFlag},
		{envLevel, levelFromEnv},
		{configLevel, levelFromConfig},
	}
	for _, c := range candidates {
		if strings.TrimSpace(c.value) != "" {
			return c.value, c.source
		}
	}
	return "", levelFromDefault
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level}))
}
