package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/lydakis/ab/internal/bootstrap"
	"github.com/lydakis/ab/internal/command"
	"github.com/lydakis/ab/internal/config"
	"github.com/lydakis/ab/internal/daemon"
	"github.com/lydakis/ab/internal/ipc"
	"github.com/lydakis/ab/internal/paths"
	"github.com/lydakis/ab/internal/response"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// SessionEnv selects the daemon session.
const SessionEnv = "AGENT_BROWSER_SESSION"

type sender interface {
	Send(req ipc.Request) (*ipc.Response, error)
}

var (
	loadConfigFn    = config.Load
	isRunningFn     = daemon.IsRunning
	ensureRunningFn = daemon.EnsureRunning
	locateDaemonFn  = bootstrap.LocateDaemon
	locateRuntimeFn = bootstrap.LocateRuntime
	newClientFn     = func(port int) sender { return ipc.NewClient(port) }
)

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) (exit int) {
	errStyle := stylerFor(config.ColorAuto, rootStderr)
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(rootStderr, errStyle.Fail(fmt.Sprint(r)))
			exit = exitFailure
		}
	}()

	inv := parseArgs(args)

	cfg, cfgErr := loadConfigFn()
	errStyle = stylerFor(cfg.ColorMode(), rootStderr)

	if handled, code := handleRootFlags(inv, cfg.ColorMode()); handled {
		return code
	}
	if handled, code := maybeHandleCompletionCommand(args, rootStdout, rootStderr); handled {
		return code
	}

	if cfgErr != nil {
		fmt.Fprintln(rootStderr, errStyle.Fail(cfgErr.Error()))
		return exitFailure
	}
	if verr := config.Validate(cfg); verr != nil {
		fmt.Fprintln(rootStderr, errStyle.Fail(fmt.Sprintf("invalid config: %v", verr)))
		return exitFailure
	}

	s := newSession(cfg)
	if inv.Verb == "mcp" {
		if err := serveMCP(s); err != nil {
			fmt.Fprintln(rootStderr, errStyle.Fail(err.Error()))
			return exitFailure
		}
		return exitOK
	}

	if err := s.run(inv); err != nil {
		fmt.Fprintln(rootStderr, errStyle.Fail(err.Error()))
		return exitFailure
	}
	return exitOK
}

// session binds one resolved daemon session to this invocation's output.
type session struct {
	cfg  *config.Config
	name string
	port int

	out      response.Styler
	errStyle response.Styler
}

func newSession(cfg *config.Config) *session {
	name := daemon.ResolveSession(os.Getenv(SessionEnv), cfg.Session)
	return &session{
		cfg:      cfg,
		name:     name,
		port:     daemon.Port(name),
		out:      stylerFor(cfg.ColorMode(), rootStdout),
		errStyle: stylerFor(cfg.ColorMode(), rootStderr),
	}
}

func (s *session) run(inv command.Invocation) error {
	resp, err := s.call(inv)
	if err != nil {
		return err
	}
	return s.writeResponse(resp, command.RemoteAction(inv.Verb), modeFor(inv.JSON))
}

// call makes sure the daemon is up and performs the exchange for inv.
func (s *session) call(inv command.Invocation) (*ipc.Response, error) {
	if err := s.ensureDaemon(); err != nil {
		return nil, err
	}
	client := newClientFn(s.port)

	if inv.Headed && inv.Verb != "close" && inv.Verb != "launch" {
		launch := ipc.NewRequest("launch", "launch")
		launch["headless"] = false
		// A browser may already be running; the command below still goes out.
		if _, err := client.Send(launch); err == nil {
			fmt.Fprintln(rootStderr, s.errStyle.OK("Browser launched in headed mode"))
		}
	}

	return client.Send(command.Build(inv))
}

// ensureDaemon starts the session daemon when its PID file names no live process.
func (s *session) ensureDaemon() error {
	pidFile := paths.PIDFile(s.name)
	if isRunningFn(pidFile) {
		return nil
	}

	script, err := locateDaemonFn(bootstrap.LocateOptions{Explicit: s.cfg.DaemonPath})
	if err != nil {
		return err
	}
	runtime, err := locateRuntimeFn(s.cfg.Node)
	if err != nil {
		return err
	}

	fmt.Fprintln(rootStderr, s.errStyle.Cyan("Starting browser daemon..."))
	_, err = ensureRunningFn(daemon.Options{
		PIDFile:  pidFile,
		LockFile: paths.LockFile(s.name),
		Runtime:  runtime,
		Script:   script,
	})
	if err != nil {
		if errors.Is(err, daemon.ErrStartTimeout) {
			return fmt.Errorf("%w within %v", err, daemon.DefaultPollInterval*daemon.DefaultMaxAttempts)
		}
		return err
	}
	fmt.Fprintln(rootStderr, s.errStyle.OK("Daemon ready"))
	return nil
}

func (s *session) writeResponse(resp *ipc.Response, action string, mode outputMode) error {
	if mode.isJSON() {
		out, err := response.RenderJSON(resp)
		if err != nil {
			return err
		}
		fmt.Fprintln(rootStdout, out)
		if !resp.Success && resp.Error != "" {
			return errors.New(resp.Error)
		}
		return nil
	}

	text, err := render(s.out, resp, action)
	if err != nil {
		return err
	}
	if text != "" {
		fmt.Fprintln(rootStdout, text)
	}
	return nil
}

// render returns the display text for resp, or the daemon's error.
func render(style response.Styler, resp *ipc.Response, action string) (string, error) {
	switch {
	case !resp.Success && resp.Error != "":
		return "", errors.New(resp.Error)
	case resp.Success:
		return response.NewFormatter(style).Format(action, resp.Data), nil
	default:
		// Raw text the daemon sent without a JSON envelope.
		return resp.Result, nil
	}
}
