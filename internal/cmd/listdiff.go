package cmd

import (
	"errors"
	"fmt"

	"github.com/harrison/filekit/internal/display"
	"github.com/harrison/filekit/internal/listdiff"
	"github.com/spf13/cobra"
)

// NewListDiffCommand creates the listdiff command
func NewListDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listdiff [reference-list] [target-list]",
		Short: "Remove the names of a reference list from a target list",
		Long: `Compare two newline-separated name lists.

The report shows how many names each list holds, which names appear in
both, and which appear only in the target list. After confirmation the
target list is rewritten with only its unique names, sorted, and the
original is kept next to it with a .backup suffix.

Examples:
  filekit listdiff existing.txt wanted.txt
  filekit listdiff existing.txt wanted.txt --yes`,
		Args: cobra.MaximumNArgs(2),
		RunE: runListDiff,
	}

	cmd.Flags().BoolP("yes", "y", false, "Rewrite the target list without asking")

	return cmd
}

func runListDiff(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, "listdiff", nil)
	if err != nil {
		return err
	}
	defer s.close()

	referencePath, err := s.argOrAsk(args, 0, "Reference list", "")
	if err != nil {
		return err
	}
	targetPath, err := s.argOrAsk(args, 1, "List to edit", "")
	if err != nil {
		return err
	}

	reference, err := readList(s, referencePath)
	if err != nil {
		return err
	}
	target, err := readList(s, targetPath)
	if err != nil {
		return err
	}

	cmp := listdiff.Compare(reference, target)
	fmt.Fprintln(s.out)
	cmp.Render(s.out)
	fmt.Fprintln(s.out)

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		confirmed, err := s.prompt.Confirm(fmt.Sprintf("Save the updated %s?", targetPath))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(s.out, "Operation cancelled. No files were modified.")
			return nil
		}
	}

	pruner := &listdiff.Pruner{
		BackupSuffix: s.cfg.ListDiff.BackupSuffix,
		LockTimeout:  s.cfg.LockTimeout,
	}
	backupPath, err := pruner.Prune(targetPath, cmp.Unique)
	if backupPath != "" {
		fmt.Fprintf(s.out, "Backup created: %s\n", backupPath)
	}
	if err != nil {
		s.log.LogError(err.Error())
		return err
	}

	fmt.Fprintf(s.out, "✓ %s updated with %d unique name(s)\n", targetPath, len(cmp.Unique))
	s.log.LogInfo(fmt.Sprintf("pruned %d name(s) from %s", len(cmp.Common), targetPath))
	return nil
}

// readList loads a name list, explaining empty lists before failing.
func readList(s *session, path string) (listdiff.Set, error) {
	set, err := listdiff.ReadSet(path)
	if errors.Is(err, listdiff.ErrEmptyList) {
		display.Warning{
			Title:      "List is empty",
			Files:      []string{path},
			Suggestion: "Add one name per line and run again.",
		}.Display(s.out)
	}
	if err != nil {
		s.log.LogError(err.Error())
		return nil, err
	}
	s.log.LogDebug(fmt.Sprintf("read %d name(s) from %s", len(set), path))
	return set, nil
}
