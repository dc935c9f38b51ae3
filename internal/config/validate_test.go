package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAcceptsValidConfig(t *testing.T) {
	script := filepath.Join(t.TempDir(), "daemon.js")
	if err := os.WriteFile(script, []byte("// daemon"), 0600); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	cfg := &Config{
		Session:    "work",
		DaemonPath: script,
		Color:      ColorAlways,
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if err := Validate(nil); err != nil {
		t.Fatalf("Validate(nil) error = %v, want nil", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		Session:    "a/b",
		DaemonPath: t.TempDir(),
		Color:      "rainbow",
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() error = nil, want non-nil")
	}

	msg := err.Error()
	for _, want := range []string{
		"session: must not contain path separators",
		"color: must be one of auto, always, never",
		"is a directory",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("Validate() error = %q, want %q", msg, want)
		}
	}
}

func TestValidateRejectsMissingDaemonPath(t *testing.T) {
	cfg := &Config{DaemonPath: filepath.Join(t.TempDir(), "nope.js")}

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "daemon_path:") {
		t.Fatalf("Validate() error = %v, want daemon_path error", err)
	}
}
