// Package rendering composes report documents from validated inputs and
// serializes them to .docx, Markdown and HTML.
package rendering

import "fmt"

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// SerializeError represents a failure to write a composed document
type SerializeError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SerializeError) Error() string {
	target := e.Path
	if target == "" {
		target = "stream"
	}
	if e.Cause != nil {
		return fmt.Sprintf("serialize error: %s: %s: %v", target, e.Message, e.Cause)
	}
	return fmt.Sprintf("serialize error: %s: %s", target, e.Message)
}

func (e *SerializeError) Unwrap() error {
	return e.Cause
}
