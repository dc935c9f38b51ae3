package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *cfg != (Config{}) {
		t.Fatalf("LoadFrom() = %+v, want empty config", *cfg)
	}
	if got := cfg.ColorMode(); got != ColorAuto {
		t.Fatalf("ColorMode() = %q, want %q", got, ColorAuto)
	}
}

func TestLoadFromParsesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	const raw = `
session = "work"
node = "/opt/node/bin/node"
daemon_path = "/opt/agent-browser/dist/daemon.js"
color = "never"
`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	want := Config{
		Session:    "work",
		Node:       "/opt/node/bin/node",
		DaemonPath: "/opt/agent-browser/dist/daemon.js",
		Color:      ColorNever,
	}
	if *cfg != want {
		t.Fatalf("LoadFrom() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadFromExpandsEnvValuesAfterParsing(t *testing.T) {
	t.Setenv("AB_HOME", "/tmp/ab-home")

	path := filepath.Join(t.TempDir(), "config.toml")
	const raw = `
daemon_path = "${AB_HOME}/dist/daemon.js"
node = "${AB_UNSET_VAR}/node"
`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if got, want := cfg.DaemonPath, "/tmp/ab-home/dist/daemon.js"; got != want {
		t.Fatalf("daemon_path = %q, want %q", got, want)
	}
	if got, want := cfg.Node, "${AB_UNSET_VAR}/node"; got != want {
		t.Fatalf("node = %q, want unresolved placeholder %q", got, want)
	}
}

func TestLoadFromRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("session = "), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() error = nil, want parse error")
	}
}
