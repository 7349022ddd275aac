package listdiff

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSetTrimsAndDedupes(t *testing.T) {
	set, err := ParseSet(strings.NewReader("  a.tga \n\nb.tga\r\na.tga\n   \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.tga", "b.tga"}, set.Sorted())
}

func TestReadSetErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadSet(filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	empty := writeList(t, dir, "empty.txt", "\n  \n")
	_, err = ReadSet(empty)
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestCompare(t *testing.T) {
	cmp := Compare(NewSet("a", "b"), NewSet("b", "c"))

	assert.Equal(t, 2, cmp.ReferenceSize)
	assert.Equal(t, 2, cmp.TargetSize)
	assert.Equal(t, []string{"b"}, cmp.Common)
	assert.Equal(t, []string{"c"}, cmp.Unique)
}

func TestCompareIsIdempotent(t *testing.T) {
	reference := NewSet("x", "y", "z")
	target := NewSet("w", "y", "v", "z")

	first := Compare(reference, target)
	second := Compare(reference, target)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"v", "w"}, first.Unique)

	again := Compare(reference, NewSet(first.Unique...))
	assert.Equal(t, first.Unique, again.Unique)
	assert.Empty(t, again.Common)
}

func TestCompareDisjointAndIdentical(t *testing.T) {
	same := Compare(NewSet("a"), NewSet("a"))
	assert.Empty(t, same.Unique)
	assert.Equal(t, []string{"a"}, same.Common)

	disjoint := Compare(NewSet("a"), NewSet("c", "b"))
	assert.Empty(t, disjoint.Common)
	assert.Equal(t, []string{"b", "c"}, disjoint.Unique)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Compare(NewSet("a", "b"), NewSet("b", "c")).Render(&buf)

	output := buf.String()
	assert.Contains(t, output, "Names in reference list: 2")
	assert.Contains(t, output, "Names in both lists:     1")
	assert.Contains(t, output, "Names only in target:    1")
	assert.Contains(t, output, "  - b\n")
	assert.Contains(t, output, "  - c\n")

	buf.Reset()
	Compare(NewSet("a"), NewSet("a")).Render(&buf)
	assert.Contains(t, buf.String(), "No unique names found")
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	original := "c.tga\nb.tga\n\nd.tga\n"
	target := writeList(t, dir, "target.txt", original)
	stamp := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, os.Chtimes(target, stamp, stamp))

	p := &Pruner{BackupSuffix: ".backup", LockTimeout: time.Second}
	backup, err := p.Prune(target, []string{"d.tga", "c.tga"})
	require.NoError(t, err)
	assert.Equal(t, target+".backup", backup)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "c.tga\nd.tga\n", string(data))

	saved, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, original, string(saved))

	info, err := os.Stat(backup)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "backup keeps the original modification time")
}

func TestPruneBackupFailureLeavesTarget(t *testing.T) {
	dir := t.TempDir()
	target := writeList(t, dir, "target.txt", "a\nb\n")

	p := &Pruner{BackupSuffix: "/nested/backup", LockTimeout: time.Second}
	_, err := p.Prune(target, []string{"a"})
	require.Error(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}

func TestPruneToEmpty(t *testing.T) {
	dir := t.TempDir()
	target := writeList(t, dir, "target.txt", "a\n")

	p := &Pruner{BackupSuffix: ".backup", LockTimeout: time.Second}
	_, err := p.Prune(target, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Empty(t, data)
}
