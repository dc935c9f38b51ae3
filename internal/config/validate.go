package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error

	if cfg.Session != "" {
		if strings.TrimSpace(cfg.Session) != cfg.Session {
			errs = append(errs, fmt.Errorf("session: must not have surrounding whitespace, got %q", cfg.Session))
		}
		if strings.ContainsAny(cfg.Session, `/\`) {
			errs = append(errs, fmt.Errorf("session: must not contain path separators, got %q", cfg.Session))
		}
	}

	switch cfg.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color: must be one of auto, always, never, got %q", cfg.Color))
	}

	if cfg.DaemonPath != "" {
		info, err := os.Stat(cfg.DaemonPath)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("daemon_path: %w", err))
		case info.IsDir():
			errs = append(errs, fmt.Errorf("daemon_path: %s is a directory, want the daemon script", cfg.DaemonPath))
		}
	}

	return errors.Join(errs...)
}
