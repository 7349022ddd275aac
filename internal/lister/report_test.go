package lister

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/filekit/internal/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleListing() *Listing {
	mod := time.Date(2024, 1, 15, 9, 5, 0, 0, time.Local)
	return &Listing{
		Root:      "/data/sprites",
		Generated: fixedNow,
		Files: []fileutil.Entry{
			{RelPath: "a.tga", Name: "a.tga", Size: 1536, ModTime: mod},
			{RelPath: "this_is_a_really_long_sprite_name_for_testing.tga", Size: 10, ModTime: mod},
			{RelPath: "z|pipe.tga", Size: 0, ModTime: mod},
		},
	}
}

func render(t *testing.T, r Report) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf))
	return buf.String()
}

func TestSimpleTextReport(t *testing.T) {
	output := render(t, Report{Listing: sampleListing(), Format: FormatText})

	rule := strings.Repeat("=", 60)
	want := rule + "\n" +
		"FILE LIST\n" +
		"Directory: /data/sprites\n" +
		"Date: 09/03/2024 14:30:05\n" +
		"Total files: 3\n" +
		rule + "\n\n" +
		"1. a.tga\n" +
		"2. this_is_a_really_long_sprite_name_for_testing.tga\n" +
		"3. z|pipe.tga\n"
	assert.Equal(t, want, output)
}

func TestDetailedTextReport(t *testing.T) {
	output := render(t, Report{Listing: sampleListing(), Detailed: true, Format: FormatText})

	assert.Contains(t, output, strings.Repeat("=", 80)+"\nDETAILED FILE LIST\n")
	assert.Contains(t, output, "No.  File Name")
	assert.Contains(t, output, "1    a.tga                                    1.50 KB         15/01/2024 09:05\n")
	assert.Contains(t, output, "this_is_a_really_long_sprite_name_for...")
	assert.NotContains(t, output, "for_testing.tga")
	assert.Contains(t, output, "Total size: 1.51 KB\n")
}

func TestTextReportCountMatchesLines(t *testing.T) {
	listing := sampleListing()
	output := render(t, Report{Listing: listing, Format: FormatText})

	body := strings.SplitN(output, "\n\n", 2)[1]
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	assert.Len(t, lines, listing.Count())
}

func TestEmptyReports(t *testing.T) {
	empty := &Listing{Root: "/empty", Generated: fixedNow}

	for _, detailed := range []bool{false, true} {
		for _, format := range []Format{FormatText, FormatMarkdown, FormatHTML} {
			output := render(t, Report{Listing: empty, Detailed: detailed, Format: format})
			assert.Contains(t, output, "No files found in directory.", "format %s detailed %v", format, detailed)
			assert.Contains(t, output, "Total files:", "format %s", format)
		}
	}
}

func TestMarkdownReport(t *testing.T) {
	simple := render(t, Report{Listing: sampleListing(), Format: FormatMarkdown})
	assert.Contains(t, simple, "# File list\n")
	assert.Contains(t, simple, "- **Total files:** 3\n")
	assert.Contains(t, simple, "1. a.tga\n")
	assert.Contains(t, simple, "2. this\\_is\\_a\\_really")

	detailed := render(t, Report{Listing: sampleListing(), Detailed: true, Format: FormatMarkdown})
	assert.Contains(t, detailed, "| No. | File Name | Size | Last Modified |\n")
	assert.Contains(t, detailed, "| 3 | z\\|pipe.tga | 0.00 B | 15/01/2024 09:05 |\n")
	assert.Contains(t, detailed, "**Total size:** 1.51 KB")
}

func TestHTMLReport(t *testing.T) {
	simple := render(t, Report{Listing: sampleListing(), Format: FormatHTML})
	assert.True(t, strings.HasPrefix(simple, "<!DOCTYPE html>"))
	assert.Contains(t, simple, "<title>FILE LIST</title>")
	assert.Contains(t, simple, "<h1>File list</h1>")
	assert.Equal(t, 3, strings.Count(simple, "<li>")-3, "three header bullets plus three files")

	detailed := render(t, Report{Listing: sampleListing(), Detailed: true, Format: FormatHTML})
	assert.Contains(t, detailed, "<table>")
	assert.Contains(t, detailed, "z|pipe.tga")
	assert.Equal(t, 3, strings.Count(detailed, "<tr>")-1, "one header row plus three files")
}

func TestParseFormatAndOutputName(t *testing.T) {
	for input, want := range map[string]Format{"": FormatText, "TXT": FormatText, "md": FormatMarkdown, "html": FormatHTML} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)

	assert.Equal(t, "file_list.txt", OutputName("file_list.txt", FormatText))
	assert.Equal(t, "file_list.md", OutputName("file_list.txt", FormatMarkdown))
	assert.Equal(t, "file_list_detailed.html", OutputName("file_list_detailed.txt", FormatHTML))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "file_list.txt")
	require.NoError(t, Report{Listing: sampleListing(), Format: FormatText}.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total files: 3")
}
