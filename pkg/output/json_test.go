package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport(t)

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary != report.Summary {
		t.Errorf("Summary = %+v, want %+v", parsed.Summary, report.Summary)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("Entries = %d, want 2", len(parsed.Entries))
	}
	if parsed.Entries[0].Line.IPValue() != "10.0.0.5" {
		t.Errorf("Entries[0].Line.IP = %q, want 10.0.0.5", parsed.Entries[0].Line.IPValue())
	}
	if parsed.Entries[0].Line.CommentValue() != " ci" {
		t.Errorf("Entries[0].Line.Comment = %q, want %q", parsed.Entries[0].Line.CommentValue(), " ci")
	}
	if parsed.Entries[1].Line.Comment != nil {
		t.Error("Entries[1].Line.Comment should be absent")
	}
}

func TestJSONFormatter_OmitsAbsentFields(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport(t)

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if strings.Count(buf.String(), `"comment"`) != 1 {
		t.Errorf("expected exactly one comment field in:\n%s", buf.String())
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	report := createTestReport(t)

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if summary.Matched != 2 {
		t.Errorf("Matched = %d, want 2", summary.Matched)
	}
	if strings.Contains(buf.String(), "entries") {
		t.Error("Quiet output should not contain entries")
	}
}
