package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"aura/pkg/store"
	"aura/pkg/utils"
)

// RegisterAdmin registers administrative endpoints.
func RegisterAdmin(r *mux.Router, d Deps) {
	r.HandleFunc("/state", d.clearState).Methods(http.MethodDelete)
}

// clearState wipes every persisted key under this core's namespace. The
// in-memory state is untouched; the seed data returns on next restart.
func (d Deps) clearState(w http.ResponseWriter, r *http.Request) {
	if err := store.Clear(); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
