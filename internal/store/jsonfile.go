package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonathan/fire-protocols/internal/schemas"
)

// readFile returns the file contents, or nil when the file does not exist.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Path: path, Message: "failed to read", Cause: err}
	}
	return data, nil
}

// decodeChecked validates data against an embedded schema and decodes it.
func decodeChecked(path, schema string, data []byte, v any) error {
	if err := schemas.ValidateBytes(schema, data); err != nil {
		return &StoreError{Path: path, Message: "file does not match schema", Cause: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &StoreError{Path: path, Message: "failed to decode", Cause: err}
	}
	return nil
}

// writeJSON replaces the file atomically with the indented encoding of v.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StoreError{Path: path, Message: "failed to encode", Cause: err}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StoreError{Path: path, Message: "failed to create directory", Cause: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return &StoreError{Path: path, Message: "failed to create temp file", Cause: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &StoreError{Path: path, Message: "failed to write", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Path: path, Message: "failed to write", Cause: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &StoreError{Path: path, Message: "failed to replace", Cause: err}
	}
	return nil
}
