package cmd

import (
	"fmt"

	"github.com/harrison/filekit/internal/display"
	"github.com/harrison/filekit/internal/lister"
	"github.com/spf13/cobra"
)

// listMode is one entry of the interactive lsreport menu.
type listMode struct {
	label     string
	detailed  bool
	recursive bool
}

var listModes = []listMode{
	{label: "Simple list (names only)"},
	{label: "Detailed list (size, date)", detailed: true},
	{label: "List including subfolders", recursive: true},
}

// NewLsReportCommand creates the lsreport command
func NewLsReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsreport [directory]",
		Short: "Write a report of the files in a directory",
		Long: `List the files of a directory and save the list to a report file.

The simple report numbers every file name. The detailed report adds each
file's size and modification time and a total size footer. With
--recursive, files in subdirectories are listed by their relative path.

Without a directory argument the command asks for the directory, the
report mode and the output name.

Examples:
  filekit lsreport ./sprites
  filekit lsreport ./sprites --detailed -o sprites.txt
  filekit lsreport ./sprites --recursive --format markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLsReport,
	}

	cmd.Flags().Bool("detailed", false, "Include size and modification time")
	cmd.Flags().BoolP("recursive", "r", false, "Include files in subdirectories")
	cmd.Flags().StringP("output", "o", "", "Report file (default from config)")
	cmd.Flags().String("format", "text", "Report format: text, markdown, html")

	return cmd
}

func runLsReport(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, "lsreport", nil)
	if err != nil {
		return err
	}
	defer s.close()

	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := lister.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	detailed, _ := cmd.Flags().GetBool("detailed")
	recursive, _ := cmd.Flags().GetBool("recursive")
	output, _ := cmd.Flags().GetString("output")

	var dir string
	if len(args) > 0 {
		dir = args[0]
	} else {
		dir, err = s.prompt.Ask("Directory to list (Enter for current)", ".")
		if err != nil {
			return err
		}
		choice, err := s.prompt.Choose("Choose an option:", modeLabels())
		if err != nil {
			return err
		}
		mode := listModes[choice-1]
		detailed, recursive = mode.detailed, mode.recursive
	}

	if output == "" {
		def := s.cfg.Lister.SimpleOutput
		if detailed {
			def = s.cfg.Lister.DetailedOutput
		}
		def = lister.OutputName(def, format)
		if len(args) > 0 {
			output = def
		} else if output, err = s.prompt.Ask("Output file name", def); err != nil {
			return err
		}
	}

	s.log.LogDebug(fmt.Sprintf("listing %s (detailed=%t recursive=%t format=%s)", dir, detailed, recursive, format))

	listing, err := lister.Collect(dir, lister.Options{Recursive: recursive})
	if err != nil {
		s.log.LogError(err.Error())
		return err
	}

	if len(listing.Warnings) > 0 {
		display.WarnErrors(fmt.Sprintf("%d folder(s) could not be read", len(listing.Warnings)), listing.Warnings).Display(s.out)
		for _, w := range listing.Warnings {
			s.log.LogWarn(w.Error())
		}
	}

	report := lister.Report{Listing: listing, Detailed: detailed, Format: format}
	if err := report.WriteFile(output); err != nil {
		s.log.LogError(err.Error())
		return err
	}

	kind := "File list"
	if detailed {
		kind = "Detailed file list"
	}
	fmt.Fprintf(s.out, "✓ %s saved to %s\n", kind, output)
	fmt.Fprintf(s.out, "✓ %d file(s) found\n", listing.Count())
	s.log.LogInfo(fmt.Sprintf("listed %d file(s) from %s into %s", listing.Count(), listing.Root, output))
	return nil
}

func modeLabels() []string {
	labels := make([]string, len(listModes))
	for i, m := range listModes {
		labels[i] = m.label
	}
	return labels
}
