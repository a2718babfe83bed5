package hostsfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hosts", "127.0.0.1 localhost\n# comment\n")

	f, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, path, f.Source)
	require.Len(t, f.Lines, 2)
	require.Len(t, f.Entries(), 1)
}

func TestReadFile_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	_, err := ReadFile(context.Background(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadFile_Binary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hosts.bin", "\xff\xfe\x00garbage")

	_, err := ReadFile(context.Background(), path)
	require.ErrorIs(t, err, ErrNotText)
	require.Contains(t, err.Error(), path)
}

func TestReadFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadFile(ctx, "/does/not/matter")
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "10.0.0.1 a\n")
	b := writeFile(t, dir, "b", "10.0.0.2 b\n10.0.0.3 c\n")

	files, err := ReadFiles(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, a, files[0].Source)
	require.Len(t, files[1].Entries(), 2)

	_, err = ReadFiles(context.Background(), []string{a, filepath.Join(dir, "nope")})
	require.Error(t, err)
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.conf", "a.conf", "other.txt"} {
		writeFile(t, dir, name, "")
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantErr  bool
	}{
		{
			name:     "glob sorted",
			patterns: []string{filepath.Join(dir, "*.conf")},
			want:     []string{filepath.Join(dir, "a.conf"), filepath.Join(dir, "b.conf")},
		},
		{
			name:     "duplicates removed",
			patterns: []string{filepath.Join(dir, "a.conf"), filepath.Join(dir, "*.conf")},
			want:     []string{filepath.Join(dir, "a.conf"), filepath.Join(dir, "b.conf")},
		},
		{
			name:     "unmatched kept literally",
			patterns: []string{filepath.Join(dir, "missing")},
			want:     []string{filepath.Join(dir, "missing")},
		},
		{
			name:     "bad pattern",
			patterns: []string{"[invalid"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandGlobs(tt.patterns)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
