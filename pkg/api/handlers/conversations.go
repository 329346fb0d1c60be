package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"aura/pkg/logger"
	"aura/pkg/models"
	"aura/pkg/utils"
)

// RegisterConversations registers the message lifecycle endpoints.
func RegisterConversations(r *mux.Router, d Deps) {
	r.HandleFunc("/conversations/{id}/messages", d.listMessages).Methods(http.MethodGet)
	r.HandleFunc("/conversations/{id}/messages", d.sendMessage).Methods(http.MethodPost)
	r.HandleFunc("/conversations/{id}/messages/{mid}", d.deleteMessage).Methods(http.MethodDelete)
	r.HandleFunc("/conversations/{id}/messages/{mid}/reactions", d.toggleReaction).Methods(http.MethodPost)
	r.HandleFunc("/conversations/{id}/messages/{mid}/star", d.toggleStar).Methods(http.MethodPost)
	r.HandleFunc("/conversations/{id}/messages/{mid}/acknowledge", d.acknowledge).Methods(http.MethodPost)
	r.HandleFunc("/conversations/{id}/messages/{mid}/crystallize", d.crystallize).Methods(http.MethodPost)
	r.HandleFunc("/conversations/{id}/typing", d.typing).Methods(http.MethodGet)
}

// sendRequest is the wire shape for posting a message. Kind defaults to
// text; ReplyTo references an existing message in the same conversation
// and is snapshotted at creation. ExpiresInMs > 0 makes the message
// disappear after that long.
type sendRequest struct {
	Text        string              `json:"text"`
	Kind        models.Kind         `json:"kind,omitempty"`
	ReplyTo     string              `json:"reply_to,omitempty"`
	Attachment  *models.Attachment  `json:"attachment,omitempty"`
	Location    *models.Location    `json:"location,omitempty"`
	Poll        []models.PollOption `json:"poll,omitempty"`
	ExpiresInMs int64               `json:"expires_in_ms,omitempty"`
}

func (d Deps) listMessages(w http.ResponseWriter, r *http.Request) {
	convID := mux.Vars(r)["id"]
	d.Engine.OpenConversation(convID)
	msgs := d.Engine.Messages(convID)
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Conversation string           `json:"conversation"`
		Messages     []models.Message `json:"messages"`
	}{Conversation: convID, Messages: msgs})
}

func (d Deps) sendMessage(w http.ResponseWriter, r *http.Request) {
	convID := mux.Vars(r)["id"]
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	now := time.Now().UnixMilli()
	m, err := models.NewMessage(utils.GenID(), req.Text, models.SenderSelf, now, req.Kind, req.Attachment, req.Location, req.Poll)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ExpiresInMs > 0 {
		m.ExpiresAt = now + req.ExpiresInMs
	}
	if req.ReplyTo != "" {
		for _, q := range d.Engine.Messages(convID) {
			if q.ID == req.ReplyTo {
				m.ReplyTo = q.Quote()
				break
			}
		}
	}
	d.Scheduler.Send(convID, m)
	logger.Info("message_sent", "conversation", convID, "id", m.ID, "kind", string(m.Kind))
	_ = utils.JSONWrite(w, http.StatusOK, m)
}

func (d Deps) deleteMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	d.Engine.Remove(vars["id"], vars["mid"])
	w.WriteHeader(http.StatusNoContent)
}

func (d Deps) toggleReaction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Emoji == "" {
		utils.JSONError(w, http.StatusBadRequest, "emoji required")
		return
	}
	d.Engine.ToggleReaction(vars["id"], vars["mid"], req.Emoji)
	w.WriteHeader(http.StatusNoContent)
}

func (d Deps) toggleStar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	d.Engine.ToggleStar(vars["id"], vars["mid"])
	w.WriteHeader(http.StatusNoContent)
}

func (d Deps) acknowledge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	d.Engine.Acknowledge(vars["id"], vars["mid"])
	w.WriteHeader(http.StatusNoContent)
}

func (d Deps) crystallize(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	convID, msgID := vars["id"], vars["mid"]
	for _, m := range d.Engine.Messages(convID) {
		if m.ID == msgID {
			a := d.Crystallizer.Crystallize(r.Context(), convID, m)
			_ = utils.JSONWrite(w, http.StatusOK, a)
			return
		}
	}
	utils.JSONError(w, http.StatusNotFound, "message not found")
}

func (d Deps) typing(w http.ResponseWriter, r *http.Request) {
	convID := mux.Vars(r)["id"]
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Conversation string `json:"conversation"`
		Typing       bool   `json:"typing"`
	}{Conversation: convID, Typing: d.Scheduler.Typing(convID)})
}
