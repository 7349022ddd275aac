// Package corrector rewrites state=<digits> tokens in a line-oriented data
// file from the expected values reported in an error log.
//
// A log line of the form
//
//	error at line 12: building 7 supposed to be '3' but was '1'
//
// yields the correction (12, "3"): the first state=<digits> token on line
// 12 of the data file becomes state=3. All corrections are validated before
// anything is written, so a bad line number leaves the data file untouched.
package corrector

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/harrison/filekit/internal/filelock"
)

// ErrLineOutOfRange is returned when the log names a line the data file does not have.
var ErrLineOutOfRange = errors.New("line number out of range")

var (
	logLinePattern = regexp.MustCompile(`error at line (\d+): .+ supposed to be '(\d+)' but was '(\d+)'`)
	statePattern   = regexp.MustCompile(`state=\d+`)
)

// Correction is one expected-value record parsed from the error log.
type Correction struct {
	// Line is the 1-based line number in the data file
	Line int
	// Expected is the value the state token must carry
	Expected string
	// Actual is the value the log says was found
	Actual string
}

// Result summarizes a correction run.
type Result struct {
	// Parsed counts log lines that matched the error grammar
	Parsed int
	// Applied counts corrections that replaced a state token
	Applied int
	// Unmatched lists target lines that had no state token
	Unmatched []int
	// Written is true when the data file was rewritten
	Written bool
}

// ParseLog extracts corrections from an error log. Lines that do not match
// the error grammar are skipped.
func ParseLog(r io.Reader) ([]Correction, error) {
	var corrections []Correction

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		match := logLinePattern.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		line, err := strconv.Atoi(match[1])
		if err != nil {
			// only reachable for digit runs that overflow int
			return nil, fmt.Errorf("%w: %s", ErrLineOutOfRange, match[1])
		}
		corrections = append(corrections, Correction{
			Line:     line,
			Expected: match[2],
			Actual:   match[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read error log: %w", err)
	}

	return corrections, nil
}

// splitLines splits content after each '\n', keeping terminators so that
// joining the pieces reproduces the input byte for byte.
func splitLines(content []byte) [][]byte {
	lines := bytes.SplitAfter(content, []byte("\n"))
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Apply returns content with every correction applied. It fails with
// ErrLineOutOfRange before changing anything if any correction targets a
// line outside the content.
func Apply(content []byte, corrections []Correction) ([]byte, Result, error) {
	result := Result{Parsed: len(corrections)}
	lines := splitLines(content)

	for _, c := range corrections {
		if c.Line < 1 || c.Line > len(lines) {
			return nil, result, fmt.Errorf("%w: line %d (data file has %d lines)", ErrLineOutOfRange, c.Line, len(lines))
		}
	}

	for _, c := range corrections {
		idx := c.Line - 1
		loc := statePattern.FindIndex(lines[idx])
		if loc == nil {
			result.Unmatched = append(result.Unmatched, c.Line)
			continue
		}

		replaced := make([]byte, 0, len(lines[idx])+len(c.Expected))
		replaced = append(replaced, lines[idx][:loc[0]]...)
		replaced = append(replaced, "state="...)
		replaced = append(replaced, c.Expected...)
		replaced = append(replaced, lines[idx][loc[1]:]...)
		lines[idx] = replaced
		result.Applied++
	}

	return bytes.Join(lines, nil), result, nil
}

// Corrector applies an error log to a data file.
type Corrector struct {
	// LockTimeout bounds the wait for the data file lock (0 = wait forever)
	LockTimeout time.Duration
}

// New creates a Corrector.
func New(lockTimeout time.Duration) *Corrector {
	return &Corrector{LockTimeout: lockTimeout}
}

// Correct reads corrections from logPath and applies them to dataPath in
// place. With no matching log lines the data file is not written. The data
// file is locked, re-read, corrected and atomically replaced; on any error
// it keeps its previous content.
func (c *Corrector) Correct(logPath, dataPath string) (Result, error) {
	logFile, err := os.Open(logPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open error log: %w", err)
	}
	corrections, err := ParseLog(logFile)
	logFile.Close()
	if err != nil {
		return Result{}, err
	}

	if _, err := os.Stat(dataPath); err != nil {
		return Result{}, fmt.Errorf("failed to access data file: %w", err)
	}

	if len(corrections) == 0 {
		return Result{}, nil
	}

	var result Result
	err = filelock.Update(dataPath, c.LockTimeout, func(content []byte) ([]byte, error) {
		updated, res, err := Apply(content, corrections)
		result = res
		if err != nil {
			return nil, err
		}
		if res.Applied == 0 {
			return nil, nil
		}
		return updated, nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to correct %s: %w", dataPath, err)
	}

	result.Written = result.Applied > 0
	return result, nil
}
