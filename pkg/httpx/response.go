package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of every non-2xx response without field details.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned when request validation fails.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"message": msg} with the given status code.
func WriteMessage(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, MessageResponse{Message: msg})
}

// WriteValidationError writes a 400 with per-field details for err.
func WriteValidationError(w http.ResponseWriter, err error) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    "validation_error",
		Message: "Request validation failed.",
		Details: ToDetails(err),
	})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
