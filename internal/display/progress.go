package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
)

// ProgressIndicator manages multi-step progress display with ANSI colors
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
	colored bool
}

// NewProgressIndicator creates a new progress indicator.
// Colors are only used when w is a terminal.
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:  w,
		total:   total,
		colored: isTerminal(w),
	}
}

// isTerminal mirrors the console logger: only stdout/stderr can be colored,
// and fatih/color has already checked they are TTYs and NO_COLOR is unset.
func isTerminal(w io.Writer) bool {
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

func (p *ProgressIndicator) paint(code, s string) string {
	if !p.colored {
		return s
	}
	return code + s + ansiReset
}

// Start displays the header message
func (p *ProgressIndicator) Start(action string) {
	fmt.Fprintf(p.writer, "%s %d file(s):\n", action, p.total)
}

// Step displays progress for current item: [N/Total] name (cyan)
func (p *ProgressIndicator) Step(name string) {
	p.current++
	fmt.Fprintln(p.writer, p.paint(ansiCyan, fmt.Sprintf("  [%d/%d] %s", p.current, p.total, name)))
}

// Detail prints an indented line under the current step
func (p *ProgressIndicator) Detail(format string, args ...any) {
	fmt.Fprintf(p.writer, "      "+format+"\n", args...)
}

// Fail prints a red cross line under the current step
func (p *ProgressIndicator) Fail(format string, args ...any) {
	fmt.Fprintln(p.writer, p.paint(ansiRed, "      ✗ "+fmt.Sprintf(format, args...)))
}

// Complete displays success message with green checkmark
func (p *ProgressIndicator) Complete(summary string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.paint(ansiGreen, "✓"), summary)
}

// Current returns how many steps were shown so far
func (p *ProgressIndicator) Current() int {
	return p.current
}
