package httpext

import (
	"encoding/json"
	"net/http"

	"github.com/relatewell/genproxy/pkg/logger"
)

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error(logger.HANDLER, "Failed to encode JSON response: %v", err)
		// Fallback to writing JSON body as plain text if JSON encoding fails
		http.Error(w, "{\"error\":\"Internal Server Error\"}", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logger.Warn(logger.HANDLER, "Failed to write JSON response: %v", err)
	}
}
