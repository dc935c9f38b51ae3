package daemon

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

var (
	// ErrNotInstalled means no daemon script could be found.
	ErrNotInstalled = errors.New("agent-browser daemon not found")
	// ErrStartTimeout means a spawned daemon never wrote a live PID file.
	ErrStartTimeout = errors.New("daemon failed to start")
)

// ChildEnv marks the spawned process as the daemon.
const ChildEnv = "AGENT_BROWSER_DAEMON=1"

const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultMaxAttempts  = 50
)

// Options describe one session's daemon.
type Options struct {
	PIDFile  string
	LockFile string
	// Runtime runs Script, normally node.
	Runtime string
	Script  string

	PollInterval time.Duration
	MaxAttempts  int
}

var (
	isRunningFn        = IsRunning
	spawnDaemonFn      = spawnDaemon
	acquireSpawnLockFn = acquireSpawnLock
	sleepFn            = time.Sleep
	execCommandFn      = exec.Command
)

// EnsureRunning starts the session daemon unless the PID file names a live
// process, then polls until it does. It reports whether this call spawned
// the daemon. Concurrent callers are serialised on the lock file so at most
// one of them spawns.
func EnsureRunning(opts Options) (bool, error) {
	if isRunningFn(opts.PIDFile) {
		return false, nil
	}
	if opts.Script == "" {
		return false, ErrNotInstalled
	}

	if opts.LockFile != "" {
		releaseLock, err := acquireSpawnLockFn(opts.LockFile)
		if err != nil {
			return false, fmt.Errorf("acquiring daemon lock: %w", err)
		}
		defer releaseLock() //nolint:errcheck

		// Another client may have finished spawning while we waited.
		if isRunningFn(opts.PIDFile) {
			return false, nil
		}
	}

	if err := spawnDaemonFn(opts); err != nil {
		return false, err
	}
	if err := waitForDaemon(opts); err != nil {
		return true, err
	}
	return true, nil
}

func spawnDaemon(opts Options) error {
	cmd, cleanup, err := newDaemonCommand(opts.Runtime, opts.Script)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawning daemon: %w", err)
	}

	// The daemon outlives this process; never wait on it.
	return cmd.Process.Release()
}

func newDaemonCommand(runtime, script string) (*exec.Cmd, func(), error) {
	if runtime == "" {
		runtime = "node"
	}
	cmd := execCommandFn(runtime, script)
	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", os.DevNull, err)
	}

	cmd.Dir = filepath.Dir(filepath.Dir(script))
	cmd.Env = append(os.Environ(), ChildEnv)
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = detachedAttr()
	return cmd, func() {
		_ = devNull.Close()
	}, nil
}

func waitForDaemon(opts Options) error {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		sleepFn(interval)
		if isRunningFn(opts.PIDFile) {
			return nil
		}
	}
	return ErrStartTimeout
}
