// Package resizer writes fixed-size copies of every image of one format in
// a directory, one output subdirectory per target size.
package resizer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/harrison/filekit/internal/display"
	"github.com/harrison/filekit/internal/fileutil"
	"github.com/harrison/filekit/internal/logger"
)

var (
	// ErrNoMatchingFiles is returned when the directory has no file with the extension.
	ErrNoMatchingFiles = errors.New("no matching image files")
	// ErrUnsupportedFormat is returned for extensions without a codec.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Target is one output size.
type Target struct {
	Name   string
	Width  int
	Height int
}

// DefaultTargets are the stock output sizes.
var DefaultTargets = []Target{
	{Name: "small", Width: 10, Height: 7},
	{Name: "medium", Width: 41, Height: 26},
}

// FileError records a source file that could not be processed.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Summary reports a batch run.
type Summary struct {
	// Found is the number of matching source files
	Found int
	// Processed is the number of files with every target written
	Processed int
	// Failures lists the skipped files
	Failures []*FileError
	// OutputDirs are the target directories, in target order
	OutputDirs []string
}

// Errors is the number of skipped files.
func (s *Summary) Errors() int {
	return len(s.Failures)
}

// Resizer batch-resizes images.
type Resizer struct {
	extension string
	targets   []Target
	codec     codec
	log       logger.Logger
	out       io.Writer
}

// New creates a Resizer for files with extension, producing targets.
// Progress lines go to out; diagnostics go to log.
func New(extension string, targets []Target, log logger.Logger, out io.Writer) (*Resizer, error) {
	c, err := codecFor(extension)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		targets = DefaultTargets
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if out == nil {
		out = io.Discard
	}
	return &Resizer{
		extension: extension,
		targets:   targets,
		codec:     c,
		log:       log,
		out:       out,
	}, nil
}

// Process resizes every matching file at the top level of dir. Nothing is
// created when dir is missing, is not a directory, or has no matching file.
// Per-file failures are recorded in the summary and the batch continues.
func (r *Resizer) Process(dir string) (*Summary, error) {
	scan, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
		Extensions: []string{r.extension},
	})
	if err != nil {
		return nil, err
	}
	if len(scan.Files) == 0 {
		return nil, fmt.Errorf("%w: no *%s files in %s", ErrNoMatchingFiles, r.extension, dir)
	}

	summary := &Summary{Found: len(scan.Files)}
	for _, t := range r.targets {
		outDir := filepath.Join(scan.Root, t.Name)
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
		}
		summary.OutputDirs = append(summary.OutputDirs, outDir)
	}

	progress := display.NewProgressIndicator(r.out, len(scan.Files))
	progress.Start(fmt.Sprintf("Resizing %s", strings.ToUpper(strings.TrimPrefix(r.extension, "."))))

	for _, entry := range scan.Files {
		progress.Step(entry.Name)
		if err := r.processFile(entry, summary.OutputDirs, progress); err != nil {
			fileErr := &FileError{Name: entry.Name, Err: err}
			summary.Failures = append(summary.Failures, fileErr)
			progress.Fail("%v", err)
			r.log.LogWarn(fmt.Sprintf("skipped %s", fileErr))
			continue
		}
		summary.Processed++
		r.log.LogDebug(fmt.Sprintf("resized %s", entry.Name))
	}

	progress.Complete(fmt.Sprintf("%d processed, %d error(s)", summary.Processed, summary.Errors()))
	return summary, nil
}

// processFile renders every target in memory before writing any, and
// removes what it wrote if a later write fails.
func (r *Resizer) processFile(entry fileutil.Entry, outDirs []string, progress *display.ProgressIndicator) error {
	f, err := os.Open(entry.Path)
	if err != nil {
		return err
	}
	img, err := r.codec.decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s decode failed: %w", r.codec.name, err)
	}

	bounds := img.Bounds()
	progress.Detail("original size: %dx%d", bounds.Dx(), bounds.Dy())

	encoded := make([][]byte, len(r.targets))
	for i, t := range r.targets {
		resized := imaging.Resize(img, t.Width, t.Height, imaging.Lanczos)
		var buf bytes.Buffer
		if err := r.codec.encode(&buf, resized); err != nil {
			return fmt.Errorf("encode %s failed: %w", t.Name, err)
		}
		encoded[i] = buf.Bytes()
	}

	var written []string
	for i, t := range r.targets {
		outPath := filepath.Join(outDirs[i], entry.Name)
		if err := os.WriteFile(outPath, encoded[i], 0644); err != nil {
			for _, p := range written {
				os.Remove(p)
			}
			return fmt.Errorf("write %s failed: %w", t.Name, err)
		}
		written = append(written, outPath)
		progress.Detail("✓ %s (%dx%d) saved", t.Name, t.Width, t.Height)
	}

	return nil
}

// Render writes the end-of-run summary block.
func (s *Summary) Render(w io.Writer, targets []Target) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintf(w, "  Files processed: %d\n", s.Processed)
	fmt.Fprintf(w, "  Errors: %d\n", s.Errors())
	fmt.Fprintln(w, "  Output written to:")
	for i, dir := range s.OutputDirs {
		if i < len(targets) {
			fmt.Fprintf(w, "    - %s (%dx%d pixels)\n", dir, targets[i].Width, targets[i].Height)
		}
	}
	fmt.Fprintln(w, rule)
}
