package domain

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrNoRecentScan means no object exists for the current hourly partition
	// or the archive was unreachable. The two causes are conflated by design;
	// callers cannot distinguish "no data yet" from "archive down".
	ErrNoRecentScan = errors.New("no recent scan found")

	// ErrFetchFailed means the scan download did not complete successfully.
	ErrFetchFailed = errors.New("scan download failed")

	// ErrBandMissing means a required spectral band is absent from the scan.
	ErrBandMissing = errors.New("band missing from scan")

	ErrInvalidInput = errors.New("invalid input")
)

// ArchiveError wraps an archive listing failure. It reports as
// ErrNoRecentScan while keeping the underlying cause for logging.
type ArchiveError struct {
	Prefix string // listing prefix that failed
	Err    error  // underlying cause, nil for a genuinely empty listing
}

// Error implements the error interface.
func (e *ArchiveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("archive listing %s: %v", e.Prefix, e.Err)
	}
	return fmt.Sprintf("archive listing %s: no objects", e.Prefix)
}

// Unwrap returns the sentinel; the cause stays in the message only.
func (e *ArchiveError) Unwrap() error {
	return ErrNoRecentScan
}

// FetchError wraps a download failure.
type FetchError struct {
	URL string // object URL that failed
	Err error  // underlying cause
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

// Unwrap returns the sentinel.
func (e *FetchError) Unwrap() error {
	return ErrFetchFailed
}

// LoadError wraps a dataset decode failure for a local file.
type LoadError struct {
	Path string // local file path
	Err  error  // underlying cause
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading dataset %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
