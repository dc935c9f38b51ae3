package command

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/lydakis/ab/internal/ipc"
)

// Invocation is one parsed command line.
type Invocation struct {
	Verb  string
	Args  []string
	Flags []string

	Headed  bool
	JSON    bool
	Verbose bool
}

// numericParams are sent as numbers when the argument parses as one.
var numericParams = map[string]bool{
	"width":     true,
	"height":    true,
	"index":     true,
	"ms":        true,
	"latitude":  true,
	"longitude": true,
}

// boolParams are true only for the literal "true".
var boolParams = map[string]bool{
	"enabled": true,
}

type flagRule struct {
	field string
	value any
	// verbs restricts the rule; empty applies to every verb.
	verbs []string
}

var flagRules = map[string]flagRule{
	"-i":         {field: "interactive", value: true, verbs: []string{"snapshot"}},
	"-c":         {field: "compact", value: true, verbs: []string{"snapshot"}},
	"--full":     {field: "fullPage", value: true},
	"-f":         {field: "fullPage", value: true},
	"--clear":    {field: "clear", value: true},
	"--visible":  {field: "state", value: "visible"},
	"--hidden":   {field: "state", value: "hidden"},
	"--attached": {field: "state", value: "attached"},
	"--detached": {field: "state", value: "detached"},
}

// valueFlags take their value inline as --name=value.
var valueFlags = map[string]string{
	"--filter": "filter",
}

// headedActions accept headless:false when --headed is given.
var headedActions = map[string]bool{
	"launch":   true,
	"navigate": true,
}

// Build maps inv onto a daemon request. It never fails: unknown verbs are
// passed through with positional args named arg0, arg1, ... and missing
// parameters are simply left out for the daemon to reject.
func Build(inv Invocation) ipc.Request {
	spec, ok := Table[inv.Verb]
	if !ok {
		req := ipc.NewRequest("cmd", inv.Verb)
		for i, arg := range inv.Args {
			req["arg"+strconv.Itoa(i)] = arg
		}
		return req
	}

	req := ipc.NewRequest("cmd", spec.Action)
	for i, p := range spec.Params {
		if i >= len(inv.Args) {
			break
		}
		req[p.Name] = coerce(p.Name, inv.Args[i])
	}

	applyFlags(req, inv.Verb, inv.Flags)

	if inv.Headed && headedActions[spec.Action] {
		req["headless"] = false
	}
	return req
}

// applyFlags walks flags in command-line order, so the last conflicting flag wins.
func applyFlags(req ipc.Request, verb string, flags []string) {
	for _, flag := range flags {
		if name, value, ok := strings.Cut(flag, "="); ok {
			if field, known := valueFlags[name]; known {
				req[field] = value
			}
			continue
		}
		rule, ok := flagRules[flag]
		if !ok {
			continue
		}
		if len(rule.verbs) > 0 && !slices.Contains(rule.verbs, verb) {
			continue
		}
		req[rule.field] = rule.value
	}
}

// numericPrefix matches the leading number of an argument; the rest is ignored.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// leadingNumber reads the number at the start of s, after leading whitespace,
// so "1280px" is 1280 and "0x10" is 0.
func leadingNumber(s string) (float64, bool) {
	m := numericPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	if strings.HasSuffix(m, "Infinity") {
		if m[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	// Out-of-range literals come back as ±Inf with ErrRange.
	n, _ := strconv.ParseFloat(m, 64)
	return n, true
}

func coerce(name, arg string) any {
	switch {
	case numericParams[name]:
		n, ok := leadingNumber(arg)
		if !ok {
			return arg
		}
		if math.IsInf(n, 0) {
			// No JSON form; sent as null.
			return nil
		}
		return n
	case boolParams[name]:
		return arg == "true"
	default:
		return arg
	}
}
