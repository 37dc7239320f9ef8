package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/jonathan/fire-protocols/internal/contracts"
	"github.com/jonathan/fire-protocols/internal/pipeline"
	"github.com/jonathan/fire-protocols/internal/schemas"
	"github.com/jonathan/fire-protocols/internal/types"
	"github.com/jonathan/fire-protocols/internal/validation"
	"github.com/jonathan/fire-protocols/internal/weather"
)

// ErrNotFound marks a missing resource.
var ErrNotFound = errors.New("not found")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		verr    *validation.ValidationError
		serr    *schemas.ValidationError
		inErr   *pipeline.InputError
		protErr *types.UnknownProtocolError
		synErr  *json.SyntaxError
		typeErr *json.UnmarshalTypeError
		wErr    *weather.Error
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &serr), errors.As(err, &inErr), errors.As(err, &protErr),
		errors.As(err, &synErr), errors.As(err, &typeErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, contracts.ErrNoContracts):
		return http.StatusNotFound
	case errors.As(err, &wErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
