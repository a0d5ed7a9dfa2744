package main

import (
	"errors"
	"syscall"

	"otaserve/internal/config"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		lines = append(lines,
			"hint: another process is already listening on that address.",
			"hint: pick a different one with --addr, OTASERVE_LISTEN_ADDR or `otaserve config set listen_addr <host:port>`.",
		)
	case errors.Is(err, syscall.EACCES):
		lines = append(lines,
			"hint: permission denied; ports below 1024 usually need elevated privileges.",
			"hint: the default listen address is "+config.DefaultListenAddr+".",
		)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
