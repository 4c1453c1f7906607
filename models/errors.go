package models

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Any step's failure aborts the remaining steps and
// is surfaced to the caller as one of these types; no partial result is ever
// returned.

// DownloadError reports an unreachable URL, a non-success status, or a
// failure writing the fetched content to staging.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("download %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("download: %v", e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// AssemblyError reports that no valid video could be loaded or that a clip
// is corrupt/unreadable.
type AssemblyError struct {
	Err error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assemble video: %v", e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// AudioError reports a corrupt or unreadable audio input.
type AudioError struct {
	Path string
	Err  error
}

func (e *AudioError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("composite audio %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("composite audio: %v", e.Err)
}

func (e *AudioError) Unwrap() error { return e.Err }

// ExportError reports a failure producing or saving the final artifact.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export video: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// ErrorKind returns a short machine-readable name for a pipeline error, or
// "internal" for anything outside the taxonomy. Wrapped errors are unwrapped.
func ErrorKind(err error) string {
	var (
		download *DownloadError
		assembly *AssemblyError
		audio    *AudioError
		export   *ExportError
	)
	switch {
	case errors.As(err, &download):
		return "download"
	case errors.As(err, &assembly):
		return "assembly"
	case errors.As(err, &audio):
		return "audio"
	case errors.As(err, &export):
		return "export"
	default:
		return "internal"
	}
}
