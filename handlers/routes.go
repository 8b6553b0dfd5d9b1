package handlers

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires every API route onto r
func RegisterRoutes(r *mux.Router, catalog *CatalogHandler, state *StateHandler, generate *GenerateHandler) {
	// Catalog routes
	r.HandleFunc("/api/catalog", catalog.GetCatalog).Methods("GET")
	r.HandleFunc("/api/catalog/status", catalog.GetStatus).Methods("GET")
	r.HandleFunc("/api/catalog/reload", catalog.ReloadCatalog).Methods("POST")

	// Names and settings routes
	r.HandleFunc("/api/names", state.GetNames).Methods("GET")
	r.HandleFunc("/api/names", state.UpdateNames).Methods("PUT")
	r.HandleFunc("/api/settings", state.GetSettings).Methods("GET")
	r.HandleFunc("/api/settings", state.UpdateSettings).Methods("PUT")
	r.HandleFunc("/api/settings/scenario", state.UpdateScenarioPin).Methods("PUT")
	r.HandleFunc("/api/settings/scene", state.UpdateScenePin).Methods("PUT")

	r.HandleFunc("/api/generate", generate.Generate).Methods("POST")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
