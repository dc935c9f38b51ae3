package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/lydakis/ab/internal/command"
)

var (
	rootStdout   io.Writer = os.Stdout
	rootStderr   io.Writer = os.Stderr
	buildVersion           = "dev"
)

func init() {
	buildVersion = resolveBuildVersion(buildVersion)
}

// handleRootFlags answers help and version requests, which never need the daemon.
func handleRootFlags(inv command.Invocation, colorMode string) (bool, int) {
	switch {
	case inv.Verb == "--version" || inv.Verb == "-V":
		fmt.Fprintf(rootStdout, "ab %s\n", buildVersion)
		return true, exitOK
	case inv.Verb == "help" && len(inv.Args) > 0:
		return true, printVerbHelp(rootStdout, rootStderr, inv.Args[0])
	case isHelpVerb(inv.Verb):
		printRootHelp(rootStdout, stylerFor(colorMode, rootStdout), inv.Verbose)
		return true, exitOK
	default:
		return false, exitOK
	}
}

func resolveBuildVersion(defaultVersion string) string {
	if defaultVersion != "" && defaultVersion != "dev" {
		return defaultVersion
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return defaultVersion
	}
	if info.Main.Version == "" || info.Main.Version == "(devel)" {
		return defaultVersion
	}
	return info.Main.Version
}
