package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/lydakis/ab/internal/config"
)

func TestStylerForExplicitModes(t *testing.T) {
	var buf bytes.Buffer
	if !stylerFor(config.ColorAlways, &buf).Color {
		t.Fatal("always: Color = false, want true")
	}
	if stylerFor(config.ColorNever, os.Stdout).Color {
		t.Fatal("never: Color = true, want false")
	}
}

func TestStylerForAutoNeedsTerminal(t *testing.T) {
	old := isTerminalFn
	defer func() { isTerminalFn = old }()
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	isTerminalFn = func(int) bool { return true }
	if stylerFor(config.ColorAuto, &buf).Color {
		t.Fatal("auto on a buffer: Color = true, want false")
	}
	if !stylerFor(config.ColorAuto, os.Stderr).Color {
		t.Fatal("auto on a terminal: Color = false, want true")
	}

	isTerminalFn = func(int) bool { return false }
	if stylerFor(config.ColorAuto, os.Stderr).Color {
		t.Fatal("auto on a pipe: Color = true, want false")
	}
}

func TestStylerForHonoursNoColor(t *testing.T) {
	old := isTerminalFn
	defer func() { isTerminalFn = old }()
	isTerminalFn = func(int) bool { return true }
	t.Setenv("NO_COLOR", "1")

	if stylerFor(config.ColorAuto, os.Stderr).Color {
		t.Fatal("NO_COLOR set: Color = true, want false")
	}
	if !stylerFor(config.ColorAlways, os.Stderr).Color {
		t.Fatal("always overrides NO_COLOR: Color = false, want true")
	}
}

func TestOutputMode(t *testing.T) {
	if !modeFor(true).isJSON() || modeFor(false).isJSON() {
		t.Fatal("modeFor() does not track the --json flag")
	}
}
