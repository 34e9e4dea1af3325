package httpext

import (
	"net/http"
)

// ErrorResponse represents a standardised JSON error response
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// JsonError writes a JSON error response with the specified status code
func JsonError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, ErrorResponse{Error: message})
}

// JsonErrorWithDetails writes a detailed JSON error response with an optional description
func JsonErrorWithDetails(w http.ResponseWriter, code int, err ErrorResponse) {
	WriteJSON(w, code, err)
}
