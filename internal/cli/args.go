package cli

import (
	"strings"

	"github.com/lydakis/ab/internal/command"
)

// parseArgs splits argv into verb, positionals and flags. The first token
// is always the verb. --headed, --json and -v/--verbose are global; any other
// dash-prefixed token is kept as a verb flag. Tokens after "--" are positional.
func parseArgs(args []string) command.Invocation {
	if len(args) == 0 {
		return command.Invocation{}
	}

	inv := command.Invocation{Verb: args[0]}
	afterSeparator := false
	for _, arg := range args[1:] {
		if afterSeparator {
			inv.Args = append(inv.Args, arg)
			continue
		}
		switch {
		case arg == "--":
			afterSeparator = true
		case arg == "--headed":
			inv.Headed = true
		case arg == "--json":
			inv.JSON = true
		case arg == "-v" || arg == "--verbose":
			inv.Verbose = true
		case strings.HasPrefix(arg, "-"):
			inv.Flags = append(inv.Flags, arg)
		default:
			inv.Args = append(inv.Args, arg)
		}
	}
	return inv
}

func isHelpVerb(verb string) bool {
	switch verb {
	case "", "help", "--help", "-h":
		return true
	default:
		return false
	}
}
