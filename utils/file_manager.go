package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory (and parents) if it does not exist
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// CreateRunDir creates the staging directory for a single pipeline run
func CreateRunDir(baseDir, runID string) (string, error) {
	runDir := filepath.Join(baseDir, runID)
	if err := EnsureDir(runDir); err != nil {
		return "", err
	}
	return runDir, nil
}

// MoveFile moves a file, falling back to copy-and-remove when rename fails
// (e.g. across filesystems)
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to flush destination: %w", err)
	}

	return os.Remove(src)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
