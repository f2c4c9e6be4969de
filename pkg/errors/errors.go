package errors

import (
	"fmt"
	"time"
)

// ErrorCategory classifies the failures a scan or verification can run into.
// This helps callers decide whether to retry, skip the target or abort.
type ErrorCategory int

const (
	// ErrorSource indicates the target could not be opened or read,
	// such as a missing file, denied permission or an object store failure.
	ErrorSource ErrorCategory = iota + 1

	// ErrorDecode indicates the target's compressed stream was corrupt
	// or used an unsupported codec.
	ErrorDecode

	// ErrorManifest indicates a manifest that could not be parsed or written.
	ErrorManifest

	// ErrorMismatch indicates the recomputed checksum differs from the recorded one.
	ErrorMismatch
)

// String returns the string representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorSource:
		return "source"
	case ErrorDecode:
		return "decode"
	case ErrorManifest:
		return "manifest"
	case ErrorMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// ScanError wraps a failure on a single target.
type ScanError struct {
	Err       error
	Operation string
	Target    string
	Timestamp time.Time
	Category  ErrorCategory
}

// NewScanError stamps err with the current time.
func NewScanError(category ErrorCategory, operation, target string, err error) *ScanError {
	return &ScanError{
		Err:       err,
		Target:    target,
		Category:  category,
		Operation: operation,
		Timestamp: time.Now(),
	}
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[%v] %s %s: %v", e.Category, e.Operation, e.Target, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// IsRetryAble returns whether errors of this category can be retried.
func (e *ScanError) IsRetryAble() bool {
	switch e.Category {
	case ErrorSource:
		// Object stores and network filesystems fail transiently.
		return true
	case ErrorDecode, ErrorManifest, ErrorMismatch:
		// The bytes themselves are wrong; reading them again changes nothing.
		return false
	default:
		return false
	}
}
