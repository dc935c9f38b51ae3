package paths

import (
	"os"
	"path/filepath"
)

// filePrefix is shared with the daemon, which writes its PID file under the same name.
const filePrefix = "agent-browser-"

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

func xdgDir(envVar, fallbackSuffix string) string {
	if v := os.Getenv(envVar); v != "" {
		return filepath.Join(v, "ab")
	}
	return filepath.Join(homeDir(), fallbackSuffix, "ab")
}

// ConfigDir returns the ab config directory ($XDG_CONFIG_HOME/ab).
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// ConfigFile returns the path to config.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// TempDir returns the shared directory holding per-session daemon files.
func TempDir() string {
	return os.TempDir()
}

// PIDFile returns the path of the PID file the daemon writes for session.
func PIDFile(session string) string {
	return filepath.Join(TempDir(), filePrefix+session+".pid")
}

// LockFile returns the path of the lock serializing daemon spawns for session.
func LockFile(session string) string {
	return filepath.Join(TempDir(), filePrefix+session+".lock")
}
