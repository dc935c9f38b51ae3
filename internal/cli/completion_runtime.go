package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/lydakis/ab/internal/command"
)

var globalFlags = []string{"--headed", "--json", "--verbose", "-v"}

// rootEntries are accepted as the first word besides Command Table verbs.
var rootEntries = []string{"help", "completion", "mcp", "--help", "-h", "--version", "-V"}

func completeVerbs(stdout io.Writer) int {
	for _, verb := range verbNames() {
		fmt.Fprintln(stdout, verb)
	}
	for _, entry := range rootEntries {
		fmt.Fprintln(stdout, entry)
	}
	return exitOK
}

func completeFlags(verb string, stdout io.Writer) int {
	if spec, ok := command.Lookup(verb); ok {
		for _, flag := range spec.Flags {
			fmt.Fprintln(stdout, flag)
		}
	}
	for _, flag := range globalFlags {
		fmt.Fprintln(stdout, flag)
	}
	return exitOK
}

func verbNames() []string {
	names := make([]string, 0, len(command.Table))
	for verb := range command.Table {
		names = append(names, verb)
	}
	sort.Strings(names)
	return names
}
