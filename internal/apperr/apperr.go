// Package apperr defines the three failure shapes every data-access path is
// normalised into before it reaches handlers, views or the CLI.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports input rejected before it reached the backing store.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, problem string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: problem}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// NetworkError means the request never produced an answer from the store.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StoreError means the store answered and refused the operation.
type StoreError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: store error (%d): %s", e.Op, e.Status, msg)
	}
	return fmt.Sprintf("%s: store error: %s", e.Op, msg)
}

func (e *StoreError) Unwrap() error { return e.Err }

// UserMessage turns any error into text fit for a notification banner.
func UserMessage(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return "Please check your input: " + ve.Error()
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "Could not reach the server. Please try again."
	}
	var se *StoreError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
