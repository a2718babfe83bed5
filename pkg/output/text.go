package output

import (
	"context"
	"fmt"
	"io"
)

// NoIP is printed for matched lines that carry no IP.
const NoIP = "No IP"

// TextFormatter formats reports as plain text, one matched line per row.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatSummary(report, w)
	}

	for _, e := range report.Entries {
		var err error
		if f.opts.Verbose {
			_, err = fmt.Fprintf(w, "%s:%d: %s\n", e.Source, e.LineNum, e.Line.Raw)
		} else {
			_, err = fmt.Fprintln(w, ipOrFallback(e))
		}
		if err != nil {
			return err
		}
	}

	if f.opts.Verbose {
		if _, err := fmt.Fprintln(w, "---"); err != nil {
			return err
		}
		return f.formatSummary(report, w)
	}
	return nil
}

func (f *TextFormatter) formatSummary(report *Report, w io.Writer) error {
	s := report.Summary
	_, err := fmt.Fprintf(w, "hostgrep: %d file(s), %d lines (%d hosts, %d comments, %d blank), %d matched\n",
		s.Files, s.Lines, s.HostLines, s.CommentLines, s.BlankLines, s.Matched)
	return err
}

func ipOrFallback(e Entry) string {
	if e.Line.IP == nil {
		return NoIP
	}
	return *e.Line.IP
}
