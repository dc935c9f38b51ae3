package config

// Color modes accepted by the color key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the top-level ab configuration.
type Config struct {
	// Session is the default session name when AGENT_BROWSER_SESSION is unset.
	Session string `toml:"session"`

	// Node is the runtime used to start the daemon script.
	Node string `toml:"node"`

	// DaemonPath points at the daemon entry script (daemon.js), skipping discovery.
	DaemonPath string `toml:"daemon_path"`

	Color string `toml:"color"`
}

// ColorMode returns the configured color mode, defaulting to auto.
func (c *Config) ColorMode() string {
	if c == nil || c.Color == "" {
		return ColorAuto
	}
	return c.Color
}
