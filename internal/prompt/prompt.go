// Package prompt asks the user for missing command arguments.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when input is needed but stdin is not a terminal.
var ErrNotInteractive = errors.New("input required but stdin is not a terminal")

// Reader defines interface for reading user input (for testing)
type Reader interface {
	ReadString(delim byte) (string, error)
}

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in          Reader
	out         io.Writer
	interactive bool
}

// NewPrompter wraps an arbitrary reader. Tests use it with canned answers;
// it is always considered interactive.
func NewPrompter(in Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, interactive: true}
}

// NewStdinPrompter reads from os.Stdin and writes questions to out.
func NewStdinPrompter(out io.Writer) *Prompter {
	fd := os.Stdin.Fd()
	return &Prompter{
		in:          bufio.NewReader(os.Stdin),
		out:         out,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// Interactive reports whether a user can answer questions.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Ask prints question and returns the trimmed answer, or def when the
// answer is empty.
func (p *Prompter) Ask(question, def string) (string, error) {
	if !p.interactive {
		return "", fmt.Errorf("%w: %s", ErrNotInteractive, question)
	}

	color.New(color.FgCyan).Fprint(p.out, question)
	if def != "" {
		fmt.Fprintf(p.out, " [%s]", def)
	}
	fmt.Fprint(p.out, ": ")

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Require is Ask without a default; an empty answer is an error.
func (p *Prompter) Require(question string) (string, error) {
	answer, err := p.Ask(question, "")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("no value given for %q", question)
	}
	return answer, nil
}

// Confirm asks a yes/no question. Accepted answers are y, yes, s and sim
// in any case; anything else, including end of input, means no.
func (p *Prompter) Confirm(question string) (bool, error) {
	if !p.interactive {
		return false, fmt.Errorf("%w: %s", ErrNotInteractive, question)
	}

	color.New(color.FgCyan).Fprintf(p.out, "%s (y/n): ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	return IsYes(line), nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

// Choose shows a numbered menu and returns the 1-based selection.
func (p *Prompter) Choose(title string, options []string) (int, error) {
	if !p.interactive {
		return 0, fmt.Errorf("%w: %s", ErrNotInteractive, title)
	}

	color.New(color.Bold).Fprintf(p.out, "\n%s\n", title)
	for i, option := range options {
		fmt.Fprintf(p.out, "  %s %s\n", color.New(color.FgYellow).Sprintf("%d.", i+1), option)
	}

	answer, err := p.Ask(fmt.Sprintf("Option (1-%d)", len(options)), "")
	if err != nil {
		return 0, err
	}

	var selection int
	if _, err := fmt.Sscanf(answer, "%d", &selection); err != nil || selection < 1 || selection > len(options) {
		return 0, fmt.Errorf("invalid selection %q: must be between 1 and %d", answer, len(options))
	}
	return selection, nil
}
