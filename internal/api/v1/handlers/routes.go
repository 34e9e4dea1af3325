package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/relatewell/genproxy/internal/api/v1/handlers/generate"
	v1mware "github.com/relatewell/genproxy/internal/api/v1/middleware"
	"github.com/relatewell/genproxy/internal/services"
)

func RegisterRoutes(router *mux.Router, services *services.Services) {
	// Public routes
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		HandleHealth(services.GetProvider(), services.GetGenerationService().DefaultModel(), w, r)
	}).Methods("GET").Name("health")
	router.Handle("/metrics", services.GetMetrics().Handler()).Methods("GET").Name("metrics")

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(v1mware.RateLimit("global", services.GetRedisService()))

	generateHandler := v1mware.RequireScope("generate")(
		v1mware.RateLimit("generate", services.GetRedisService())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			generate.HandleGenerate(services.GetGenerationService(), w, r)
		})))

	api.Handle("/generate", generateHandler).Methods("POST").Name("generate")
	api.Handle("/v1/generate", generateHandler).Methods("POST").Name("generate_v1")
}
