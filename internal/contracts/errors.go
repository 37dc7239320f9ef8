// Package contracts scans a directory of contract documents, extracts the
// customer and object of each, and keeps the contract cache up to date.
package contracts

import (
	"errors"
	"fmt"
)

// ErrNoContracts is returned by Update when the directory yields no records.
// The existing cache is left untouched.
var ErrNoContracts = errors.New("no contracts found")

// ScanError represents a failure of a whole directory scan. Failures of single
// files are logged and skipped instead.
type ScanError struct {
	Dir     string
	Message string
	Cause   error
}

func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scan error: %s: %s: %v", e.Dir, e.Message, e.Cause)
	}
	return fmt.Sprintf("scan error: %s: %s", e.Dir, e.Message)
}

func (e *ScanError) Unwrap() error {
	return e.Cause
}
