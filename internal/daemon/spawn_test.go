package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func saveSpawnHooks() func() {
	oldIsRunning := isRunningFn
	oldSpawn := spawnDaemonFn
	oldLock := acquireSpawnLockFn
	oldSleep := sleepFn
	oldExec := execCommandFn

	return func() {
		isRunningFn = oldIsRunning
		spawnDaemonFn = oldSpawn
		acquireSpawnLockFn = oldLock
		sleepFn = oldSleep
		execCommandFn = oldExec
	}
}

func testOptions(t *testing.T) Options {
	dir := t.TempDir()
	return Options{
		PIDFile:  filepath.Join(dir, "agent-browser-test.pid"),
		LockFile: filepath.Join(dir, "agent-browser-test.lock"),
		Runtime:  "node",
		Script:   "/opt/agent-browser/dist/daemon.js",
	}
}

func TestEnsureRunningSkipsLiveDaemon(t *testing.T) {
	restore := saveSpawnHooks()
	defer restore()

	isRunningFn = func(string) bool { return true }
	spawnDaemonFn = func(Options) error {
		t.Fatal("spawnDaemon called for a live daemon")
		return nil
	}

	started, err := EnsureRunning(testOptions(t))
	if err != nil {
		t.Fatalf("EnsureRunning() error = %v", err)
	}
	if started {
		t.Fatal("EnsureRunning() started = true, want false")
	}
}

func TestEnsureRunningSpawnsAndPolls(t *testing.T) {
	restore := saveSpawnHooks()
	defer restore()

	var spawned atomic.Bool
	var polls int
	isRunningFn = func(string) bool {
		if !spawned.Load() {
			return false
		}
		polls++
		return polls >= 3
	}
	spawnDaemonFn = func(Options) error {
		spawned.Store(true)
		return nil
	}
	var slept []time.Duration
	sleepFn = func(d time.Duration) { slept = append(slept, d) }

	started, err := EnsureRunning(testOptions(t))
	if err != nil {
		t.Fatalf("EnsureRunning() error = %v", err)
	}
	if !started {
		t.Fatal("EnsureRunning() started = false, want true")
	}
	if len(slept) != 3 {
		t.Fatalf("slept %d times, want 3", len(slept))
	}
	for _, d := range slept {
		if d != DefaultPollInterval {
			t.Fatalf("poll interval = %v, want %v", d, DefaultPollInterval)
		}
	}
}

func TestEnsureRunningTimesOut(t *testing.T) {
	restore := saveSpawnHooks()
	defer restore()

	isRunningFn = func(string) bool { return false }
	spawnDaemonFn = func(Options) error { return nil }
	var sleeps int
	sleepFn = func(time.Duration) { sleeps++ }

	_, err := EnsureRunning(testOptions(t))
	if !errors.Is(err, ErrStartTimeout) {
		t.Fatalf("EnsureRunning() error = %v, want ErrStartTimeout", err)
	}
	if sleeps != DefaultMaxAttempts {
		t.Fatalf("polled %d times, want %d", sleeps, DefaultMaxAttempts)
	}
}

func TestEnsureRunningHonoursPollOptions(t *testing.T) {
	restore := saveSpawnHooks()
	defer restore()

	isRunningFn = func(string) bool { return false }
	spawnDaemonFn = func(Options) error { return nil }
	var sleeps int
	sleepFn = func(d time.Duration) {
		if d != 5*time.Millisecond {
			t.Fatalf("sleep(%v), want 5ms", d)
		}
		sleeps++
	}

	opts := testOptions(t)
	opts.PollInterval = 5 * time.Millisecond
	opts.MaxAttempts = 4
	if _, err := EnsureRunning(opts); !errors.Is(err, ErrStartTimeout) {
		t.Fatalf("EnsureRunning() error = %v, want ErrStartTimeout", err)
	}
	if sleeps != 4 {
		t.Fatalf("polled %d times, want 4", sleeps)
	}
}

func TestEnsureRunningWithoutScript(t *testing.T) {
	restore := saveSpawnHooks()
	defer restore()

	isRunningFn = func(string) bool { return false }
	opts := testOptions(t)
	opts.Script = ""

	if _, err := EnsureRunning(opts); !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("EnsureRunning() error = %v, want ErrNotInstalled", err)
	}
}

func TestEnsureRunningPropagatesSpawnError(t *testing.T) {
	restore := saveSpawnHooks()
	defer restore()

	isRunningFn = func(string) bool { return false }
	spawnDaemonFn = func(Options) error { return errors.New("exec: node: not found") }

	_, err := EnsureRunning(testOptions(t))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("EnsureRunning() error = %v, want spawn error", err)
	}
}

func TestEnsureRunningSerializesDaemonSpawn(t *testing.T) {
	restore := saveSpawnHooks()
	defer restore()

	var ready atomic.Bool
	var spawns atomic.Int32

	isRunningFn = func(string) bool { return ready.Load() }
	spawnDaemonFn = func(Options) error {
		spawns.Add(1)
		time.Sleep(20 * time.Millisecond)
		ready.Store(true)
		return nil
	}
	sleepFn = func(time.Duration) {}

	opts := testOptions(t)

	const callers = 12
	start := make(chan struct{})
	errs := make(chan error, callers)
	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := EnsureRunning(opts)
			errs <- err
		}()
	}

	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("EnsureRunning() error = %v", err)
		}
	}

	if got := spawns.Load(); got != 1 {
		t.Fatalf("spawnDaemon called %d times, want 1", got)
	}
}

func TestNewDaemonCommandDetachesStandardStreams(t *testing.T) {
	cmd, cleanup, err := newDaemonCommand("/usr/bin/node", "/opt/agent-browser/dist/daemon.js")
	if err != nil {
		t.Fatalf("newDaemonCommand() error = %v", err)
	}
	defer cleanup()

	if cmd.Stdin == nil || cmd.Stdout == nil || cmd.Stderr == nil {
		t.Fatal("standard streams not detached")
	}
	if len(cmd.Args) != 2 || cmd.Args[0] != "/usr/bin/node" || cmd.Args[1] != "/opt/agent-browser/dist/daemon.js" {
		t.Fatalf("cmd.Args = %#v, want runtime and script", cmd.Args)
	}
	if cmd.Dir != "/opt/agent-browser" {
		t.Fatalf("cmd.Dir = %q, want package root", cmd.Dir)
	}

	var marked bool
	for _, kv := range cmd.Env {
		if kv == ChildEnv {
			marked = true
		}
	}
	if !marked {
		t.Fatalf("cmd.Env missing %s", ChildEnv)
	}
}

func TestNewDaemonCommandDefaultsRuntime(t *testing.T) {
	cmd, cleanup, err := newDaemonCommand("", "/srv/dist/daemon.js")
	if err != nil {
		t.Fatalf("newDaemonCommand() error = %v", err)
	}
	defer cleanup()

	if filepath.Base(cmd.Args[0]) != "node" {
		t.Fatalf("cmd.Args[0] = %q, want node", cmd.Args[0])
	}
}

func TestSpawnDaemonStartsDetachedProcess(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	restore := saveSpawnHooks()
	defer restore()

	dir := t.TempDir()
	script := filepath.Join(dir, "dist", "daemon.js")
	if err := os.MkdirAll(filepath.Dir(script), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(script, []byte("echo \"$$\" > \"$PIDFILE\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	pidFile := filepath.Join(dir, "daemon.pid")
	t.Setenv("PIDFILE", pidFile)

	if err := spawnDaemon(Options{Runtime: "/bin/sh", Script: script}); err != nil {
		t.Fatalf("spawnDaemon() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := ReadPID(pidFile); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("spawned process never wrote its pid")
}
