package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/filekit/internal/corrector"
	"github.com/harrison/filekit/internal/display"
	"github.com/spf13/cobra"
)

// NewFixStateCommand creates the fix-state command
func NewFixStateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix-state [error-log] [data-file]",
		Short: "Correct state=<n> tokens in a data file from an error log",
		Long: `Read an error log and rewrite the data file it describes.

Every log line of the form

  error at line <N>: <description> supposed to be '<A>' but was '<B>'

sets the first state=<digits> token on line N of the data file to state=A.
Other log lines are ignored. All corrections are checked before the data
file is touched: a line number outside the file aborts the whole run and
the file keeps its previous content.

Examples:
  filekit fix-state error_log.txt buildings.txt
  filekit fix-state            # asks for both paths`,
		Args: cobra.MaximumNArgs(2),
		RunE: runFixState,
	}

	return cmd
}

func runFixState(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, "fix-state", nil)
	if err != nil {
		return err
	}
	defer s.close()

	logPath, err := s.argOrAsk(args, 0, "Error log file", "")
	if err != nil {
		return err
	}
	dataPath, err := s.argOrAsk(args, 1, "Data file to correct", "")
	if err != nil {
		return err
	}

	s.log.LogInfo(fmt.Sprintf("applying %s to %s", logPath, dataPath))

	result, err := corrector.New(s.cfg.LockTimeout).Correct(logPath, dataPath)
	if err != nil {
		s.log.LogError(err.Error())
		return err
	}

	printFixStateResult(s.out, dataPath, result)
	if result.Written {
		s.log.LogInfo(fmt.Sprintf("%s rewritten with %d correction(s)", dataPath, result.Applied))
	}
	return nil
}

func printFixStateResult(w io.Writer, dataPath string, result corrector.Result) {
	if result.Parsed == 0 {
		fmt.Fprintf(w, "No error lines found; %s left unchanged.\n", dataPath)
		return
	}

	fmt.Fprintf(w, "Corrections found:   %d\n", result.Parsed)
	fmt.Fprintf(w, "Corrections applied: %d\n", result.Applied)

	if len(result.Unmatched) > 0 {
		lines := make([]string, len(result.Unmatched))
		for i, n := range result.Unmatched {
			lines[i] = fmt.Sprintf("line %d", n)
		}
		display.Warning{
			Title:      fmt.Sprintf("%d line(s) have no state= token", len(result.Unmatched)),
			Files:      lines,
			Suggestion: "Check that the error log matches this data file.",
		}.Display(w)
	}

	if result.Written {
		fmt.Fprintf(w, "✓ %s updated\n", dataPath)
	} else {
		fmt.Fprintf(w, "%s left unchanged.\n", dataPath)
	}
}
