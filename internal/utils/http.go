package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// APIError is one entry of the error envelope returned by the admin API.
type APIError struct {
	Message   string `json:"message"`
	ErrorType string `json:"errorType"`
}

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes {"errors": [{"message": ..., "errorType": ...}]} with
// the given status code.
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) (int, error) {
	return WriteJSON(w, map[string][]APIError{
		"errors": {{Message: message, ErrorType: errorType}},
	}, statusCode)
}

// NewRequestID returns a time-ordered UUIDv7, falling back to a random
// UUIDv4 when the clock cannot be read.
func NewRequestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
