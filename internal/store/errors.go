// Package store persists the contract cache and the report history as flat
// JSON files. Every update rewrites the whole file; the last writer wins.
package store

import "fmt"

// StoreError represents a failure reading or writing a store file.
type StoreError struct {
	Path    string
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("store error: %s: %s", e.Path, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
