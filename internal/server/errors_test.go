package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/fire-protocols/internal/contracts"
	"github.com/jonathan/fire-protocols/internal/pipeline"
	"github.com/jonathan/fire-protocols/internal/schemas"
	"github.com/jonathan/fire-protocols/internal/store"
	"github.com/jonathan/fire-protocols/internal/types"
	"github.com/jonathan/fire-protocols/internal/validation"
	"github.com/jonathan/fire-protocols/internal/weather"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", &validation.ValidationError{}, http.StatusUnprocessableEntity},
		{"wrapped validation", fmt.Errorf("generate: %w", &validation.ValidationError{}), http.StatusUnprocessableEntity},
		{"schema", &schemas.ValidationError{}, http.StatusBadRequest},
		{"input", &pipeline.InputError{Message: "empty"}, http.StatusBadRequest},
		{"unknown protocol", &types.UnknownProtocolError{Type: "bridge"}, http.StatusBadRequest},
		{"json syntax", &json.SyntaxError{}, http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"missing file", &store.StoreError{Message: "read", Cause: fs.ErrNotExist}, http.StatusNotFound},
		{"no contracts", &contracts.ScanError{Message: "nothing", Cause: contracts.ErrNoContracts}, http.StatusNotFound},
		{"weather", errors.Join(&weather.Error{Source: weather.SourceWttr}, &weather.Error{Source: weather.SourceOpenMeteo}), http.StatusServiceUnavailable},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
