package hostsfile

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// ParseLine classifies a single line. It never fails: malformed input
// yields a partially populated Line.
func ParseLine(line string) Line {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return Line{Raw: line}
	}

	if strings.HasPrefix(trimmed, "#") {
		return Line{Raw: line, Comment: &trimmed}
	}

	parsed := Line{Raw: line}

	data, comment, found := strings.Cut(trimmed, "#")
	if found {
		parsed.Comment = &comment
	}

	// Only single spaces separate fields; tabs and runs of spaces are kept
	// as part of (or as empty) tokens.
	fields := strings.Split(data, " ")
	parsed.IP = &fields[0]
	if len(fields) > 1 {
		parsed.Hosts = &fields[1]
	}

	return parsed
}

// ParseFile splits content into lines and parses each one in order.
// Empty content yields no lines.
func ParseFile(content string) []Line {
	// The buffer limit exceeds len(content), so Scan cannot return ErrTooLong.
	lines, _ := Scan(strings.NewReader(content), len(content))
	return lines
}

// Scan reads lines from r and parses each one. sizeHint bounds the longest
// line expected; lines longer than max(sizeHint, bufio.MaxScanTokenSize)
// return bufio.ErrTooLong.
func Scan(r io.Reader, sizeHint int) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), sizeHint+bufio.MaxScanTokenSize)
	scanner.Split(scanLines)

	var lines []Line
	for scanner.Scan() {
		lines = append(lines, ParseLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return lines, err
	}
	return lines, nil
}

// scanLines is bufio.ScanLines except that a final line without a trailing
// newline is returned verbatim, so a lone "\r" survives as line content.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[:i], []byte{'\r'}), nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
