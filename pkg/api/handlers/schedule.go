package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"aura/pkg/models"
	"aura/pkg/utils"
)

// RegisterSchedule registers the scheduled-send queue endpoints.
// Scheduling records a future send only; no message is appended to the
// target conversation until an external deliverer consumes the entry.
func RegisterSchedule(r *mux.Router, d Deps) {
	r.HandleFunc("/scheduled", d.listScheduled).Methods(http.MethodGet)
	r.HandleFunc("/scheduled", d.scheduleMessage).Methods(http.MethodPost)
}

func (d Deps) listScheduled(w http.ResponseWriter, r *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Scheduled []models.ScheduledMessage `json:"scheduled"`
	}{Scheduled: d.Scheduled.List()})
}

func (d Deps) scheduleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID       string `json:"chat_id"`
		Text         string `json:"text"`
		ScheduledFor int64  `json:"scheduled_for"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ChatID == "" || req.Text == "" {
		utils.JSONError(w, http.StatusBadRequest, "chat_id and text required")
		return
	}
	sm := d.Scheduled.Schedule(req.ChatID, req.Text, req.ScheduledFor)
	_ = utils.JSONWrite(w, http.StatusOK, sm)
}
