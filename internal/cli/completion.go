package cli

import (
	"fmt"
	"io"
	"strings"
)

func maybeHandleCompletionCommand(args []string, stdout, stderr io.Writer) (bool, int) {
	if len(args) == 0 {
		return false, exitOK
	}

	switch args[0] {
	case "completion":
		return true, runCompletionCommand(args[1:], stdout, stderr)
	case "__complete":
		return true, runInternalCompletion(args[1:], stdout, stderr)
	default:
		return false, exitOK
	}
}

func runCompletionCommand(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "ab: usage: ab completion <bash|zsh|fish>")
		return exitUsage
	}

	script, ok := completionScripts[strings.ToLower(args[0])]
	if !ok {
		fmt.Fprintf(stderr, "ab: unknown shell for completion: %s\n", args[0])
		return exitUsage
	}

	_, _ = io.WriteString(stdout, script)
	return exitOK
}

func runInternalCompletion(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "ab: usage: ab __complete <verbs|flags> ...")
		return exitUsage
	}

	switch args[0] {
	case "verbs":
		if len(args) != 1 {
			fmt.Fprintln(stderr, "ab: usage: ab __complete verbs")
			return exitUsage
		}
		return completeVerbs(stdout)
	case "flags":
		if len(args) != 2 {
			fmt.Fprintln(stderr, "ab: usage: ab __complete flags <verb>")
			return exitUsage
		}
		return completeFlags(args[1], stdout)
	default:
		fmt.Fprintf(stderr, "ab: unknown completion query: %s\n", args[0])
		return exitUsage
	}
}
