package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/lydakis/ab/internal/command"
	"github.com/lydakis/ab/internal/config"
	"github.com/lydakis/ab/internal/response"
)

var helpExamples = []struct{ cmd, note string }{
	{"ab open https://example.com --headed", ""},
	{"ab snapshot -i", "Get interactive refs"},
	{"ab click @e2", "Click by ref"},
	{`ab fill @e3 "search text"`, ""},
	{"ab console", "View console logs"},
	{"ab errors", "View JS errors"},
	{`ab eval "document.title"`, ""},
	{"ab screenshot ./test.png --full", ""},
	{"ab close", ""},
}

// printRootHelp prints the category overview, or every verb when verbose.
func printRootHelp(out io.Writer, style response.Styler, verbose bool) {
	fmt.Fprintf(out, "%s - Browser automation from the command line\n", style.Cyan("ab"))
	fmt.Fprintln(out, "Usage: ab <command> [args] [--flags]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Global flags: --headed (visible browser), --json (JSON output)")
	fmt.Fprintln(out, "")

	if verbose {
		for _, cat := range command.Categories {
			fmt.Fprintln(out, style.Yellow(cat.Name+":"))
			for _, verb := range cat.Verbs {
				spec := command.Table[verb]
				fmt.Fprintf(out, "  %-16s %-24s %s\n", verb, spec.Usage(), spec.Help)
			}
			fmt.Fprintln(out, "")
		}
	} else {
		names := make([]string, 0, len(command.Categories))
		for _, cat := range command.Categories {
			names = append(names, cat.Name)
		}
		fmt.Fprintf(out, "Categories: %s\n", strings.Join(names, ", "))
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Common commands:")
		for _, verb := range command.CommonVerbs {
			spec := command.Table[verb]
			fmt.Fprintf(out, "  %-14s %-20s %s\n", verb, spec.Usage(), spec.Help)
		}
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Use --help -v for full command list, ab help <command> for one command")
	}

	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Examples:")
	for _, ex := range helpExamples {
		if ex.note == "" {
			fmt.Fprintf(out, "  %s\n", ex.cmd)
			continue
		}
		fmt.Fprintf(out, "  %-36s # %s\n", ex.cmd, ex.note)
	}

	fmt.Fprintf(out, "\nConfig file: %s\n", config.ExampleConfigPath())
}

func printVerbHelp(out, errOut io.Writer, verb string) int {
	spec, ok := command.Lookup(verb)
	if !ok {
		fmt.Fprintf(errOut, "ab: unknown command: %s\n", verb)
		return exitFailure
	}

	usage := "ab " + verb
	if params := spec.Usage(); params != "" {
		usage += " " + params
	}
	if len(spec.Flags) > 0 {
		usage += " [" + strings.Join(spec.Flags, "] [") + "]"
	}
	fmt.Fprintf(out, "Usage: %s\n", usage)
	fmt.Fprintf(out, "\n%s\n", spec.Help)
	fmt.Fprintf(out, "\nDaemon action: %s\n", spec.Action)
	if category := categoryOf(verb); category != "" {
		fmt.Fprintf(out, "Category: %s\n", category)
	}
	return exitOK
}

func categoryOf(verb string) string {
	for _, cat := range command.Categories {
		for _, v := range cat.Verbs {
			if v == verb {
				return cat.Name
			}
		}
	}
	return ""
}
