package corrector

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleData = "id=1 name=mill state=1\n" +
	"id=2 name=farm state=2\n" +
	"id=3 name=well state=2 next_state=9\n" +
	"id=4 name=gate\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseLog(t *testing.T) {
	log := strings.Join([]string{
		"loading buildings.txt",
		"error at line 3: x supposed to be '5' but was '2'",
		"warning at line 4: something odd",
		"[12:00:01] error at line 10: building 7 supposed to be '0' but was '14' (retry)",
		"error at line 2: building 1 supposed to be '1' but was '2'",
		"error at line 2:  supposed to be '1' but was '2'",
		"error at line 2: y supposed to be 'a' but was '2'",
	}, "\n")

	corrections, err := ParseLog(strings.NewReader(log))
	require.NoError(t, err)
	assert.Equal(t, []Correction{
		{Line: 3, Expected: "5", Actual: "2"},
		{Line: 10, Expected: "0", Actual: "14"},
		{Line: 2, Expected: "1", Actual: "2"},
	}, corrections)
}

func TestApplyRewritesOnlyTargetLine(t *testing.T) {
	updated, result, err := Apply([]byte(sampleData), []Correction{{Line: 3, Expected: "5", Actual: "2"}})
	require.NoError(t, err)

	want := "id=1 name=mill state=1\n" +
		"id=2 name=farm state=2\n" +
		"id=3 name=well state=5 next_state=9\n" +
		"id=4 name=gate\n"
	assert.Equal(t, want, string(updated))
	assert.Equal(t, Result{Parsed: 1, Applied: 1}, result)
}

func TestApplyPreservesLineEndings(t *testing.T) {
	content := "a state=1\r\nb state=2\r\nc state=3"
	updated, _, err := Apply([]byte(content), []Correction{{Line: 3, Expected: "42"}})
	require.NoError(t, err)
	assert.Equal(t, "a state=1\r\nb state=2\r\nc state=42", string(updated))
}

func TestApplyLaterCorrectionWins(t *testing.T) {
	updated, result, err := Apply([]byte(sampleData), []Correction{
		{Line: 1, Expected: "7"},
		{Line: 1, Expected: "8"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(updated), "id=1 name=mill state=8\n"))
	assert.Equal(t, 2, result.Applied)
}

func TestApplyLineWithoutStateToken(t *testing.T) {
	updated, result, err := Apply([]byte(sampleData), []Correction{{Line: 4, Expected: "1"}})
	require.NoError(t, err)
	assert.Equal(t, sampleData, string(updated))
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, []int{4}, result.Unmatched)
}

func TestApplyOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		line int
	}{
		{name: "zero", line: 0},
		{name: "past end", line: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Apply([]byte(sampleData), []Correction{
				{Line: 1, Expected: "9"},
				{Line: tt.line, Expected: "9"},
			})
			assert.ErrorIs(t, err, ErrLineOutOfRange)
		})
	}
}

func TestCorrect(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeFile(t, dir, "buildings.txt", sampleData)
	logPath := writeFile(t, dir, "error.log", "error at line 3: x supposed to be '5' but was '2'\n")

	result, err := New(time.Second).Correct(logPath, dataPath)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, 1, result.Applied)

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	lines := strings.SplitAfter(string(data), "\n")
	original := strings.SplitAfter(sampleData, "\n")
	require.Len(t, lines, len(original))
	for i := range lines {
		if i == 2 {
			assert.Equal(t, "id=3 name=well state=5 next_state=9\n", lines[i])
			continue
		}
		assert.Equal(t, original[i], lines[i], "line %d must be byte-identical", i+1)
	}
}

func TestCorrectNoMatchesLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeFile(t, dir, "buildings.txt", sampleData)
	logPath := writeFile(t, dir, "error.log", "all good\nnothing to see\n")

	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(dataPath, stamp, stamp))

	result, err := New(time.Second).Correct(logPath, dataPath)
	require.NoError(t, err)
	assert.False(t, result.Written)
	assert.Equal(t, 0, result.Parsed)

	info, err := os.Stat(dataPath)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "data file must not be rewritten")
}

func TestCorrectOutOfRangeIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeFile(t, dir, "buildings.txt", sampleData)
	logPath := writeFile(t, dir, "error.log",
		"error at line 1: x supposed to be '9' but was '1'\n"+
			"error at line 40: x supposed to be '9' but was '1'\n")

	_, err := New(time.Second).Correct(logPath, dataPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLineOutOfRange))

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Equal(t, sampleData, string(data))
}

func TestCorrectMissingFiles(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeFile(t, dir, "buildings.txt", sampleData)
	logPath := writeFile(t, dir, "error.log", "error at line 1: x supposed to be '9' but was '1'\n")

	_, err := New(time.Second).Correct(filepath.Join(dir, "missing.log"), dataPath)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New(time.Second).Correct(logPath, filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
