package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lydakis/ab/internal/daemon"
)

// DaemonPathEnv overrides daemon discovery.
const DaemonPathEnv = "AGENT_BROWSER_DAEMON_PATH"

const packageName = "agent-browser"

// LocateOptions controls daemon script discovery. Zero values use the
// process environment.
type LocateOptions struct {
	// Explicit is the configured daemon_path; it is tried first.
	Explicit   string
	Getenv     func(string) string
	Executable func() (string, error)
	Glob       func(pattern string) ([]string, error)
	Stat       func(path string) (os.FileInfo, error)
	GOOS       string
}

// LocateDaemon returns the first daemon.js found on the candidate list.
func LocateDaemon(opts LocateOptions) (string, error) {
	opts = opts.withDefaults()

	for _, candidate := range DaemonCandidates(opts) {
		info, err := opts.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%w. Run: npm install -g %s", daemon.ErrNotInstalled, packageName)
}

// DaemonCandidates lists the paths LocateDaemon checks, in order.
func DaemonCandidates(opts LocateOptions) []string {
	opts = opts.withDefaults()

	var out []string
	add := func(path string) {
		if strings.TrimSpace(path) == "" {
			return
		}
		out = append(out, filepath.Clean(path))
	}

	add(opts.Explicit)
	add(opts.Getenv(DaemonPathEnv))

	script := filepath.Join("node_modules", packageName, "dist", "daemon.js")
	for _, root := range globalPrefixes(opts) {
		add(filepath.Join(root, script))
	}

	if exe, err := opts.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		add(filepath.Join(filepath.Dir(exe), "..", "dist", "daemon.js"))
	}
	return out
}

// globalPrefixes returns directories that contain a global node_modules.
func globalPrefixes(opts LocateOptions) []string {
	var roots []string

	if prefix := opts.Getenv("NPM_CONFIG_PREFIX"); prefix != "" {
		roots = append(roots, npmRoot(prefix, opts.GOOS))
	}

	if opts.GOOS == "windows" {
		if appData := opts.Getenv("APPDATA"); appData != "" {
			pattern := filepath.Join(appData, "fnm", "node-versions", "*", "installation")
			if matches, err := opts.Glob(pattern); err == nil {
				roots = append(roots, matches...)
			}
			roots = append(roots, filepath.Join(appData, "npm"))
		}
		if local := opts.Getenv("LOCALAPPDATA"); local != "" {
			roots = append(roots, filepath.Join(local, "npm"))
		}
		return roots
	}

	if home := opts.Getenv("HOME"); home != "" {
		roots = append(roots, filepath.Join(home, ".npm-global", "lib"))
		pattern := filepath.Join(home, ".local", "share", "fnm", "node-versions", "*", "installation", "lib")
		if matches, err := opts.Glob(pattern); err == nil {
			roots = append(roots, matches...)
		}
	}
	return append(roots, "/usr/local/lib", "/opt/homebrew/lib", "/usr/lib")
}

// npmRoot maps an npm prefix onto the directory holding node_modules.
func npmRoot(prefix, goos string) string {
	if goos == "windows" {
		return prefix
	}
	return filepath.Join(prefix, "lib")
}

func (o LocateOptions) withDefaults() LocateOptions {
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	if o.Executable == nil {
		o.Executable = os.Executable
	}
	if o.Glob == nil {
		o.Glob = filepath.Glob
	}
	if o.Stat == nil {
		o.Stat = os.Stat
	}
	if o.GOOS == "" {
		o.GOOS = runtime.GOOS
	}
	return o
}
