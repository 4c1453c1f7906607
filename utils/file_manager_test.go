package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "a", "b", "c")

	require.NoError(t, EnsureDir(nested))
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory
	assert.NoError(t, EnsureDir(nested))
}

func TestCreateRunDir(t *testing.T) {
	base := t.TempDir()

	runDir, err := CreateRunDir(base, "run-123")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "run-123"), runDir)

	info, err := os.Stat(runDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMoveFile(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src.mp4")
	dst := filepath.Join(base, "out", "dst.mp4")
	require.NoError(t, EnsureDir(filepath.Dir(dst)))
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))

	require.NoError(t, MoveFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.False(t, FileExists(src))
}

func TestMoveFileMissingSource(t *testing.T) {
	base := t.TempDir()
	err := MoveFile(filepath.Join(base, "missing.mp4"), filepath.Join(base, "dst.mp4"))
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
}
