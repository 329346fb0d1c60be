package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"aura/pkg/models"
	"aura/pkg/utils"
)

// RegisterArtifacts registers the artifact archive endpoint.
func RegisterArtifacts(r *mux.Router, d Deps) {
	r.HandleFunc("/artifacts", d.listArtifacts).Methods(http.MethodGet)
}

func (d Deps) listArtifacts(w http.ResponseWriter, r *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Artifacts []models.Artifact `json:"artifacts"`
	}{Artifacts: d.Artifacts.List()})
}
