package service

import (
	"errors"
	"strings"
)

// Sentinel errors for the HTTP layer to map onto status codes.
var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
)

// Detail strips the sentinel prefix from a wrapped service error, leaving the
// human-readable part for the response body.
func Detail(err error) string {
	s := err.Error()
	for _, sentinel := range []string{"validation: ", "unauthorized: ", "not found: ", "conflict: "} {
		if rest, ok := strings.CutPrefix(s, sentinel); ok {
			return rest
		}
	}
	return s
}
