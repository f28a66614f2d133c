// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "google-api-key", "  AIza123  \n")
				writeFile(t, dir, "google-cse-cx", "cx-abc\n")
				return dir
			},
			want: Secrets{"google-api-key": "AIza123", "google-cse-cx": "cx-abc"},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files, dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "google-api-key", "valid")
				writeFile(t, dir, "empty", "")
				writeFile(t, dir, "blank", "   \n\t ")
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Secrets{"google-api-key": "valid"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestGetFallsBackToEnv(t *testing.T) {
	t.Setenv("LK_FINDER_GOOGLE_CSE_CX", " cx-env ")
	t.Setenv("LK_FINDER_GOOGLE_API_KEY", "from-env")

	s := Secrets{"google-api-key": "from-file"}
	assert.Equal(t, "from-file", s.Get("google-api-key"))
	assert.Equal(t, "cx-env", s.Get("google-cse-cx"))
	assert.Equal(t, "", s.Get("unknown-secret"))
}

func TestNamesSorted(t *testing.T) {
	s := Secrets{"b": "1", "a": "2", "c": "3"}
	assert.Equal(t, []string{"a", "b", "c"}, s.Names())
	assert.Empty(t, Secrets{}.Names())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "LK_FINDER_GOOGLE_API_KEY", EnvVar("google-api-key"))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
