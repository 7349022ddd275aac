// Package lister enumerates the files of a directory and writes them as a
// plain-text, markdown or HTML report.
package lister

import (
	"fmt"
	"time"

	"github.com/harrison/filekit/internal/fileutil"
)

// Options selects what Collect enumerates.
type Options struct {
	// Recursive includes files in all subdirectories, hidden ones too
	Recursive bool
	// Now stamps the listing; defaults to time.Now
	Now func() time.Time
}

// Listing is a sorted snapshot of a directory's files.
type Listing struct {
	// Root is the absolute directory path
	Root string
	// Generated is when the listing was taken
	Generated time.Time
	// Files are sorted by path relative to Root
	Files []fileutil.Entry
	// Warnings are subdirectories that could not be read
	Warnings []error
}

// Count is the number of files listed.
func (l *Listing) Count() int {
	return len(l.Files)
}

// TotalSize sums all file sizes.
func (l *Listing) TotalSize() int64 {
	var total int64
	for _, f := range l.Files {
		total += f.Size
	}
	return total
}

// Collect lists the regular files under dir. Problems with dir itself
// (missing, not a directory, unreadable) are returned as errors; problems
// with subdirectories end up in Warnings.
func Collect(dir string, opts Options) (*Listing, error) {
	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
		Recursive:     opts.Recursive,
		IncludeHidden: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	return &Listing{
		Root:      result.Root,
		Generated: now(),
		Files:     result.Files,
		Warnings:  result.Errors,
	}, nil
}
