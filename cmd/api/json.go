package main

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// it parses body into Go struct.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	}

	return writeJSON(w, status, &envelope{
		Success: false,
		Message: message,
		Status:  status,
	})
}

// writeJSONValidationError is writeJSONError plus the per-field problems.
func writeJSONValidationError(w http.ResponseWriter, message string, fields map[string]string) error {
	type envelope struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Status  int               `json:"status"`
		Fields  map[string]string `json:"fields,omitempty"`
	}

	return writeJSON(w, http.StatusBadRequest, &envelope{
		Success: false,
		Message: message,
		Status:  http.StatusBadRequest,
		Fields:  fields,
	})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	type envelope struct {
		Data any `json:"data"`
	}
	return writeJSON(w, status, &envelope{Data: data})
}
