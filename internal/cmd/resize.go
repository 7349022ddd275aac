package cmd

import (
	"fmt"

	"github.com/harrison/filekit/internal/config"
	"github.com/harrison/filekit/internal/resizer"
	"github.com/spf13/cobra"
)

// NewResizeCommand creates the resize command
func NewResizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize [directory]",
		Short: "Write small and medium copies of every image in a folder",
		Long: `Resize every image with the configured extension (default .tga) found
at the top level of a directory. Each image is written once per target
size, in its own format and under its own name, into a subdirectory
named after the target:

  small/   10x7 pixels
  medium/  41x26 pixels

Images that cannot be read are reported and skipped; the rest of the
batch still runs. Nothing is created when the directory holds no
matching image.

Examples:
  filekit resize ./buildings
  filekit resize ./icons --ext .png`,
		Args: cobra.MaximumNArgs(1),
		RunE: runResize,
	}

	cmd.Flags().String("ext", "", "Image extension to process (default from config: .tga)")

	return cmd
}

func runResize(cmd *cobra.Command, args []string) error {
	var extension *string
	if cmd.Flags().Changed("ext") {
		v, _ := cmd.Flags().GetString("ext")
		extension = &v
	}

	s, err := newSession(cmd, "resize", extension)
	if err != nil {
		return err
	}
	defer s.close()

	dir, err := s.argOrAsk(args, 0, "Folder with images", "")
	if err != nil {
		return err
	}

	targets := resizeTargets(s.cfg.Resizer.Targets)
	r, err := resizer.New(s.cfg.Resizer.Extension, targets, s.log, s.out)
	if err != nil {
		return err
	}

	s.log.LogInfo(fmt.Sprintf("resizing *%s in %s", s.cfg.Resizer.Extension, dir))

	summary, err := r.Process(dir)
	if err != nil {
		s.log.LogError(err.Error())
		return err
	}

	fmt.Fprintln(s.out)
	summary.Render(s.out, targets)

	if summary.Errors() > 0 {
		s.log.LogWarn(fmt.Sprintf("%d of %d image(s) skipped", summary.Errors(), summary.Found))
	}
	return nil
}

func resizeTargets(targets []config.Target) []resizer.Target {
	out := make([]resizer.Target, len(targets))
	for i, t := range targets {
		out[i] = resizer.Target{Name: t.Name, Width: t.Width, Height: t.Height}
	}
	return out
}
