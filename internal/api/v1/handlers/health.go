package handlers

import (
	"net/http"

	"github.com/relatewell/genproxy/pkg/httpext"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

func HandleHealth(provider, model string, w http.ResponseWriter, r *http.Request) {
	httpext.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Provider: provider,
		Model:    model,
	})
}
