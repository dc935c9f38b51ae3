package bootstrap

import (
	"fmt"
	"os/exec"
	"strings"
)

// DefaultRuntime is the interpreter the daemon script runs under.
const DefaultRuntime = "node"

type lookupPathFunc func(file string) (string, error)

// LocateRuntime resolves the daemon runtime binary, defaulting to node.
func LocateRuntime(configured string) (string, error) {
	return locateRuntimeWithLookup(configured, exec.LookPath)
}

func locateRuntimeWithLookup(configured string, lookup lookupPathFunc) (string, error) {
	if lookup == nil {
		lookup = exec.LookPath
	}

	command := trimBalancedQuotes(strings.TrimSpace(configured))
	if command == "" {
		command = DefaultRuntime
	}
	path, err := lookup(command)
	if err != nil {
		return "", fmt.Errorf("required runtime %q not found in PATH", command)
	}
	return path, nil
}

func trimBalancedQuotes(token string) string {
	if len(token) < 2 {
		return token
	}
	start := token[0]
	end := token[len(token)-1]
	if (start == '\'' && end == '\'') || (start == '"' && end == '"') {
		return token[1 : len(token)-1]
	}
	return token
}
