package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"aura/pkg/api/handlers"
)

// Handler assembles the versioned HTTP surface over the chat core.
func Handler(d handlers.Deps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	handlers.RegisterConversations(v1, d)
	handlers.RegisterContacts(v1, d)
	handlers.RegisterArtifacts(v1, d)
	handlers.RegisterSchedule(v1, d)
	handlers.RegisterAdmin(v1, d)

	// Simple root help
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"endpoints":["GET /v1/contacts","GET /v1/conversations/{id}/messages","POST /v1/conversations/{id}/messages","GET /v1/artifacts","POST /v1/scheduled"]}`))
	})

	return r
}
