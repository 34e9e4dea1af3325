package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	v1handlers "github.com/relatewell/genproxy/internal/api/v1/handlers"
	v1mware "github.com/relatewell/genproxy/internal/api/v1/middleware"
	"github.com/relatewell/genproxy/internal/services"
	"github.com/relatewell/genproxy/pkg/httpext"
)

// NewRouter builds the HTTP router with the shared middleware chain.
func NewRouter(services *services.Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(
		v1mware.RequestID,
		v1mware.Recover,
		v1mware.AccessLog(services.GetMetrics()),
	)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpext.JsonError(w, "Not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpext.JsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	v1handlers.RegisterRoutes(router, services)
	return router
}
