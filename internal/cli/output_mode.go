package cli

import (
	"io"
	"os"

	"github.com/lydakis/ab/internal/config"
	"github.com/lydakis/ab/internal/response"
	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal

type outputMode int

const (
	outputModeText outputMode = iota
	outputModeJSON
)

func (m outputMode) isJSON() bool {
	return m == outputModeJSON
}

func modeFor(jsonFlag bool) outputMode {
	if jsonFlag {
		return outputModeJSON
	}
	return outputModeText
}

// stylerFor enables colour for w per the configured mode. Auto colours only
// terminals, and only while NO_COLOR is unset.
func stylerFor(mode string, w io.Writer) response.Styler {
	switch mode {
	case config.ColorAlways:
		return response.Styler{Color: true}
	case config.ColorNever:
		return response.Styler{}
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return response.Styler{}
	}
	f, ok := w.(*os.File)
	if !ok {
		return response.Styler{}
	}
	return response.Styler{Color: isTerminalFn(int(f.Fd()))}
}
