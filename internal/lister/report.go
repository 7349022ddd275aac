package lister

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/harrison/filekit/internal/filelock"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format is a report output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

const (
	dateLayout      = "02/01/2006 15:04:05"
	shortLayout     = "02/01/2006 15:04"
	emptyListing    = "No files found in directory."
	nameColumn      = 40
	simpleRuleLen   = 60
	detailedRuleLen = 80
)

// ParseFormat accepts text, txt, markdown, md and html.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, markdown or html)", s)
}

// OutputName swaps the extension of a default report name to match format.
func OutputName(base string, format Format) string {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	switch format {
	case FormatMarkdown:
		return stem + ".md"
	case FormatHTML:
		return stem + ".html"
	}
	return base
}

// Report renders a listing.
type Report struct {
	Listing  *Listing
	Detailed bool
	Format   Format
}

// Render writes the report to w.
func (r Report) Render(w io.Writer) error {
	switch r.Format {
	case FormatText, "":
		if r.Detailed {
			r.renderDetailedText(w)
		} else {
			r.renderSimpleText(w)
		}
		return nil
	case FormatMarkdown:
		_, err := io.WriteString(w, r.markdown())
		return err
	case FormatHTML:
		return r.renderHTML(w)
	}
	return fmt.Errorf("unknown report format %q", r.Format)
}

// WriteFile renders the report into path with an atomic replace.
func (r Report) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return err
	}
	if err := filelock.AtomicWrite(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r Report) title() string {
	if r.Detailed {
		return "DETAILED FILE LIST"
	}
	return "FILE LIST"
}

func (r Report) writeHeader(w io.Writer, rule string) {
	l := r.Listing
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, r.title())
	fmt.Fprintf(w, "Directory: %s\n", l.Root)
	fmt.Fprintf(w, "Date: %s\n", l.Generated.Format(dateLayout))
	fmt.Fprintf(w, "Total files: %d\n", l.Count())
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func (r Report) renderSimpleText(w io.Writer) {
	r.writeHeader(w, strings.Repeat("=", simpleRuleLen))

	if r.Listing.Count() == 0 {
		fmt.Fprintln(w, emptyListing)
		return
	}
	for i, f := range r.Listing.Files {
		fmt.Fprintf(w, "%d. %s\n", i+1, f.RelPath)
	}
}

func (r Report) renderDetailedText(w io.Writer) {
	r.writeHeader(w, strings.Repeat("=", detailedRuleLen))

	if r.Listing.Count() == 0 {
		fmt.Fprintln(w, emptyListing)
		return
	}

	dashes := strings.Repeat("-", detailedRuleLen)
	fmt.Fprintf(w, "%-4s %-40s %-15s %s\n", "No.", "File Name", "Size", "Last Modified")
	fmt.Fprintln(w, dashes)
	for i, f := range r.Listing.Files {
		fmt.Fprintf(w, "%-4d %-40s %-15s %s\n",
			i+1, truncateName(f.RelPath), FormatSize(f.Size), f.ModTime.Format(shortLayout))
	}
	fmt.Fprintln(w, dashes)
	fmt.Fprintf(w, "Total size: %s\n", FormatSize(r.Listing.TotalSize()))
}

// truncateName cuts names longer than the name column to 37 runes plus "...".
func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= nameColumn {
		return name
	}
	runes := []rune(name)
	return string(runes[:nameColumn-3]) + "..."
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`, "!", `\!`,
)

func (r Report) markdown() string {
	l := r.Listing
	var b strings.Builder

	title := "File list"
	if r.Detailed {
		title = "Detailed file list"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **Directory:** %s\n", markdownEscaper.Replace(l.Root))
	fmt.Fprintf(&b, "- **Date:** %s\n", l.Generated.Format(dateLayout))
	fmt.Fprintf(&b, "- **Total files:** %d\n\n", l.Count())

	if l.Count() == 0 {
		b.WriteString(emptyListing + "\n")
		return b.String()
	}

	if !r.Detailed {
		for i, f := range l.Files {
			fmt.Fprintf(&b, "%d. %s\n", i+1, markdownEscaper.Replace(f.RelPath))
		}
		return b.String()
	}

	b.WriteString("| No. | File Name | Size | Last Modified |\n")
	b.WriteString("|----:|-----------|-----:|---------------|\n")
	for i, f := range l.Files {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			i+1, markdownEscaper.Replace(f.RelPath), FormatSize(f.Size), f.ModTime.Format(shortLayout))
	}
	fmt.Fprintf(&b, "\n**Total size:** %s\n", FormatSize(l.TotalSize()))
	return b.String()
}

func (r Report) renderHTML(w io.Writer) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(r.markdown()), &body); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}

	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", r.title())
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
