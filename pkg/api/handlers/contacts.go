package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"aura/pkg/models"
	"aura/pkg/utils"
)

// RegisterContacts registers roster and mood endpoints.
func RegisterContacts(r *mux.Router, d Deps) {
	r.HandleFunc("/contacts", d.listContacts).Methods(http.MethodGet)
	r.HandleFunc("/contacts/{id}/mood", d.setContactMood).Methods(http.MethodPut)
	r.HandleFunc("/mood", d.setGlobalMood).Methods(http.MethodPut)
}

type moodRequest struct {
	Mood models.Mood `json:"mood"`
}

func (d Deps) listContacts(w http.ResponseWriter, r *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Contacts []models.Contact `json:"contacts"`
	}{Contacts: d.Engine.Contacts()})
}

func (d Deps) setContactMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !models.ValidMood(req.Mood) {
		utils.JSONError(w, http.StatusBadRequest, "valid mood required")
		return
	}
	d.Engine.SetContactMood(mux.Vars(r)["id"], req.Mood)
	w.WriteHeader(http.StatusNoContent)
}

// setGlobalMood sets the atmosphere: every contact's mood plus the local
// user's mood, which feeds subsequent reply prompts.
func (d Deps) setGlobalMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !models.ValidMood(req.Mood) {
		utils.JSONError(w, http.StatusBadRequest, "valid mood required")
		return
	}
	d.Engine.SetGlobalMood(req.Mood)
	w.WriteHeader(http.StatusNoContent)
}
