package hostsfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"
)

// DefaultPath is the system hosts file on Unix-like systems.
const DefaultPath = "/etc/hosts"

// ErrNotText is returned when a file does not contain valid UTF-8 text.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// ReadFile reads and parses the hosts file at path.
func ReadFile(ctx context.Context, path string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("reading hosts file %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading hosts file %s: %w", path, ErrNotText)
	}

	return &File{
		Source: path,
		Lines:  ParseFile(string(data)),
	}, nil
}

// ReadFiles reads every path in order, stopping at the first error.
func ReadFiles(ctx context.Context, paths []string) ([]*File, error) {
	files := make([]*File, 0, len(paths))
	for _, path := range paths {
		f, err := ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// ExpandGlobs expands a list of file paths and glob patterns into a deduplicated,
// sorted list of paths. Patterns that match nothing are returned as-is so the
// read step can report them.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(result)

	return result, nil
}
