// Package output provides formatting for search results.
package output

import (
	"time"

	"github.com/ccollicutt/hostgrep/pkg/filter"
	"github.com/ccollicutt/hostgrep/pkg/hostsfile"
)

// Report is the complete search output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Entries are the matched lines in source order.
	Entries []Entry `json:"entries"`

	// Metadata provides context about the search.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics over every parsed line.
type Summary struct {
	Files        int `json:"files"`
	Lines        int `json:"lines"`
	HostLines    int `json:"host_lines"`
	CommentLines int `json:"comment_lines"`
	BlankLines   int `json:"blank_lines"`
	Matched      int `json:"matched"`
}

// Entry is one matched line with its location.
type Entry struct {
	// Source is the file the line came from.
	Source string `json:"source"`

	// LineNum is the 1-based line number in Source.
	LineNum int `json:"line_num"`

	Kind hostsfile.Kind `json:"kind"`
	Line hostsfile.Line `json:"line"`
}

// Metadata provides context about the search run.
type Metadata struct {
	Pattern     string        `json:"pattern"`
	Sources     []string      `json:"sources"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

// NewReport builds a Report from parsed files, keeping lines the filter matches.
func NewReport(files []*hostsfile.File, f *filter.Filter, started time.Time) *Report {
	report := &Report{
		Entries: []Entry{},
		Metadata: Metadata{
			Pattern: f.Pattern(),
			Sources: make([]string, 0, len(files)),
		},
	}

	for _, file := range files {
		report.Summary.Files++
		report.Metadata.Sources = append(report.Metadata.Sources, file.Source)

		for i, line := range file.Lines {
			report.Summary.Lines++
			kind := line.Kind()
			switch kind {
			case hostsfile.KindEntry:
				report.Summary.HostLines++
			case hostsfile.KindComment:
				report.Summary.CommentLines++
			default:
				report.Summary.BlankLines++
			}

			if !f.Match(line) {
				continue
			}

			report.Entries = append(report.Entries, Entry{
				Source:  file.Source,
				LineNum: i + 1,
				Kind:    kind,
				Line:    line,
			})
		}
	}

	report.Summary.Matched = len(report.Entries)
	report.Metadata.GeneratedAt = time.Now()
	report.Metadata.Duration = report.Metadata.GeneratedAt.Sub(started)

	return report
}

// HasMatches returns true if any line matched.
func (r *Report) HasMatches() bool {
	return r.Summary.Matched > 0
}
