// Package progress renders installer progress on the terminal.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	stepColor = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
)

// Console writes one line per reported message, prefixed with the completed
// percentage. Fraction increments without a message only advance the counter.
type Console struct {
	out      io.Writer
	fraction float64
}

// NewConsole returns a Console reporting to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Report implements installer.Reporter.
func (c *Console) Report(message string, increment float64) {
	c.fraction += increment
	if c.fraction > 1 {
		c.fraction = 1
	}
	if message == "" {
		return
	}
	_, _ = fmt.Fprintf(c.out, "[%3.0f%%] %s\n", c.fraction*100, colorize(message))
}

// colorize picks a color from the message's verb. Messages come from the
// small fixed set in the messages package, so prefix matching is enough.
func colorize(message string) string {
	switch {
	case strings.HasPrefix(message, "Installed"), strings.HasPrefix(message, "Applied"):
		return okColor.Sprint(message)
	case strings.HasPrefix(message, "Failed"):
		return failColor.Sprint(message)
	case strings.HasPrefix(message, "Installing"), strings.HasPrefix(message, "Upgrading"):
		return stepColor.Sprint(message)
	case strings.HasPrefix(message, "could not"), strings.HasPrefix(message, "Installation cancelled"):
		return warnColor.Sprint(message)
	default:
		return message
	}
}
