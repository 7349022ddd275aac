// Package listdiff compares two newline-delimited name lists as sets and
// prunes the second list down to the names the first one lacks.
package listdiff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/harrison/filekit/internal/filelock"
)

// ErrEmptyList is returned when a list file holds no names.
var ErrEmptyList = errors.New("list is empty")

// Set is an unordered collection of distinct names.
type Set map[string]struct{}

// NewSet builds a set from names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ParseSet reads trimmed, non-empty lines from r.
func ParseSet(r io.Reader) (Set, error) {
	set := make(Set)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			set[name] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// ReadSet loads a list file. A missing file returns an error wrapping
// fs.ErrNotExist; a file without names returns ErrEmptyList.
func ReadSet(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list: %w", err)
	}
	defer f.Close()

	set, err := ParseSet(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read list %s: %w", path, err)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyList, path)
	}
	return set, nil
}

// Comparison is the result of comparing a reference list with a target list.
type Comparison struct {
	// ReferenceSize is the number of names in the reference list
	ReferenceSize int
	// TargetSize is the number of names in the target list
	TargetSize int
	// Common holds names present in both lists, sorted
	Common []string
	// Unique holds names present only in the target list, sorted
	Unique []string
}

// Compare computes the intersection and the target-minus-reference difference.
func Compare(reference, target Set) Comparison {
	cmp := Comparison{
		ReferenceSize: len(reference),
		TargetSize:    len(target),
		Common:        []string{},
		Unique:        []string{},
	}
	for _, name := range target.Sorted() {
		if reference.Has(name) {
			cmp.Common = append(cmp.Common, name)
		} else {
			cmp.Unique = append(cmp.Unique, name)
		}
	}
	return cmp
}

// Render writes the human-readable comparison report.
func (c Comparison) Render(w io.Writer) {
	fmt.Fprintln(w, "=== COMPARISON RESULT ===")
	fmt.Fprintf(w, "Names in reference list: %d\n", c.ReferenceSize)
	fmt.Fprintf(w, "Names in target list:    %d\n", c.TargetSize)
	fmt.Fprintf(w, "Names in both lists:     %d\n", len(c.Common))
	fmt.Fprintf(w, "Names only in target:    %d\n", len(c.Unique))

	if len(c.Common) > 0 {
		fmt.Fprintln(w, "\nNames to be removed from the target list (present in both):")
		for _, name := range c.Common {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	if len(c.Unique) > 0 {
		fmt.Fprintln(w, "\nNames that stay in the target list (unique):")
		for _, name := range c.Unique {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	} else {
		fmt.Fprintln(w, "\nNo unique names found in the target list.")
	}
}

// Pruner rewrites a target list with a backup of the original.
type Pruner struct {
	// BackupSuffix is appended to the target path for the backup copy
	BackupSuffix string
	// LockTimeout bounds the wait for the target file lock
	LockTimeout time.Duration
}

// Prune copies path to path+BackupSuffix (mode and modification time kept)
// and then replaces path with names, sorted, one per line. It returns the
// backup path. A failed backup leaves path untouched.
func (p *Pruner) Prune(path string, names []string) (string, error) {
	backupPath := path + p.BackupSuffix
	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup %s: %w", backupPath, err)
	}

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	var b strings.Builder
	for _, name := range sorted {
		b.WriteString(name)
		b.WriteString("\n")
	}

	if err := filelock.LockAndWrite(path, []byte(b.String()), p.LockTimeout); err != nil {
		return backupPath, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return backupPath, nil
}

// copyFile copies src to dst, keeping permission bits and modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
