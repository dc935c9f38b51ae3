package response

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// Styler wraps text in ANSI colours when enabled.
type Styler struct {
	Color bool
}

func (s Styler) paint(code, text string) string {
	if !s.Color {
		return text
	}
	return code + text + ansiReset
}

func (s Styler) Green(text string) string  { return s.paint(ansiGreen, text) }
func (s Styler) Red(text string) string    { return s.paint(ansiRed, text) }
func (s Styler) Yellow(text string) string { return s.paint(ansiYellow, text) }
func (s Styler) Cyan(text string) string   { return s.paint(ansiCyan, text) }

// OK prefixes msg with a check mark.
func (s Styler) OK(msg string) string {
	return s.Green("✓") + " " + msg
}

// Fail prefixes msg with a cross.
func (s Styler) Fail(msg string) string {
	return s.Red("✗") + " " + msg
}
