package chat

import (
	"sync"
	"time"

	"aura/pkg/logger"
	"aura/pkg/models"
	"aura/pkg/store"
	"aura/pkg/telemetry"
)

// Persistence keys for the collections owned by the engine.
const (
	KeyHistory  = "chatHistory"
	KeyContacts = "contacts"
	KeyUserMood = "userMood"
)

// Engine owns the conversation store and the message lifecycle operations.
// All state lives behind one mutex so every operation is atomic with
// respect to every other. External callers only ever see copies; the
// defined operations are the sole way to advance the state.
type Engine struct {
	mu       sync.Mutex
	history  map[string][]models.Message
	contacts []models.Contact
	userMood models.Mood
}

func NewEngine() *Engine {
	return &Engine{
		history:  make(map[string][]models.Message),
		userMood: models.MoodNeutral,
	}
}

// Restore seeds the engine from the store, falling back to the initial
// roster and conversations when no prior state exists. Called exactly once
// at process start.
func (e *Engine) Restore() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !store.Load(KeyContacts, &e.contacts) {
		e.contacts = seedContacts()
	}
	if !store.Load(KeyHistory, &e.history) {
		e.history = seedHistory()
	}
	if e.history == nil {
		e.history = make(map[string][]models.Message)
	}
	var mood models.Mood
	if store.Load(KeyUserMood, &mood) && models.ValidMood(mood) {
		e.userMood = mood
	}
	logger.Info("engine_restored", "contacts", len(e.contacts), "conversations", len(e.history))
}

// OpenConversation lazily creates an empty message sequence for the
// contact the first time its conversation is opened.
func (e *Engine) OpenConversation(convID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.history[convID]; !ok {
		e.history[convID] = []models.Message{}
		store.Save(KeyHistory, e.history)
	}
}

// Messages returns a copy of the conversation's ordered history; empty,
// never an error, when the conversation is absent.
func (e *Engine) Messages(convID string) []models.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Message(nil), e.history[convID]...)
}

// Append inserts the message at the tail of the conversation and refreshes
// the contact's last-message preview. Appending an id already present is a
// no-op, so replaying a mutation is safe.
func (e *Engine) Append(convID string, m models.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	msgs := e.history[convID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].ID == m.ID {
			return
		}
	}
	e.history[convID] = append(msgs, m)
	e.refreshPreview(convID, m.Text)
	store.Save(KeyHistory, e.history)
	store.Save(KeyContacts, e.contacts)
	telemetry.MessagesAppended.Inc()
}

// Remove deletes the message from the conversation, scanning tail to head.
// An absent id is a no-op, so deleting twice is safe.
func (e *Engine) Remove(convID, msgID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	msgs := e.history[convID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].ID == msgID {
			e.history[convID] = append(msgs[:i], msgs[i+1:]...)
			store.Save(KeyHistory, e.history)
			return
		}
	}
}

// MapMessage applies a pure transform to the one matching message, leaving
// all others untouched. Returns false when conversation or message is
// absent (a no-op, not an error).
func (e *Engine) MapMessage(convID, msgID string, fn func(models.Message) models.Message) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mapLocked(convID, msgID, fn)
}

func (e *Engine) mapLocked(convID, msgID string, fn func(models.Message) models.Message) bool {
	msgs := e.history[convID]
	for i := range msgs {
		if msgs[i].ID == msgID {
			msgs[i] = fn(msgs[i])
			store.Save(KeyHistory, e.history)
			return true
		}
	}
	return false
}

// ToggleStar flips the starred flag on the message.
func (e *Engine) ToggleStar(convID, msgID string) {
	e.MapMessage(convID, msgID, func(m models.Message) models.Message {
		m.Starred = !m.Starred
		return m
	})
}

// Acknowledge moves the message to the terminal received_with_love state.
// Acknowledging twice yields the same state as acknowledging once.
func (e *Engine) Acknowledge(convID, msgID string) {
	e.MapMessage(convID, msgID, func(m models.Message) models.Message {
		m.Status = models.StatusReceivedWithLove
		return m
	})
}

// SetStatus transitions the message's delivery status.
func (e *Engine) SetStatus(convID, msgID string, s models.Status) {
	e.MapMessage(convID, msgID, func(m models.Message) models.Message {
		m.Status = s
		return m
	})
}

// MarkCrystallized flags the message as archived. The caller removes it
// from the conversation as part of the crystallization pipeline.
func (e *Engine) MarkCrystallized(convID, msgID string) {
	e.MapMessage(convID, msgID, func(m models.Message) models.Message {
		m.Crystallized = true
		return m
	})
}

// RemoveExpired drops every disappearing message whose expiry has passed.
// Returns the number of removed messages.
func (e *Engine) RemoveExpired(nowMillis int64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed := 0
	for convID, msgs := range e.history {
		kept := msgs[:0]
		for _, m := range msgs {
			if m.Expired(nowMillis) {
				removed++
				continue
			}
			kept = append(kept, m)
		}
		e.history[convID] = kept
	}
	if removed > 0 {
		store.Save(KeyHistory, e.history)
		logger.Info("expired_messages_removed", "count", removed)
	}
	return removed
}

// Contacts returns a copy of the roster.
func (e *Engine) Contacts() []models.Contact {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Contact(nil), e.contacts...)
}

// Contact looks up one roster entry by id.
func (e *Engine) Contact(id string) (models.Contact, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return models.Contact{}, false
}

// SetContactMood updates one contact's mood. Unknown contact is a no-op.
func (e *Engine) SetContactMood(id string, mood models.Mood) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.contacts {
		if e.contacts[i].ID == id {
			e.contacts[i].Mood = mood
			store.Save(KeyContacts, e.contacts)
			return
		}
	}
}

// SetGlobalMood sets the atmosphere: every contact's mood and the local
// user's mood at once.
func (e *Engine) SetGlobalMood(mood models.Mood) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.contacts {
		e.contacts[i].Mood = mood
	}
	e.userMood = mood
	store.Save(KeyContacts, e.contacts)
	store.Save(KeyUserMood, e.userMood)
	logger.Info("global_mood_set", "mood", string(mood))
}

// UserMood returns the local user's current mood.
func (e *Engine) UserMood() models.Mood {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.userMood
}

// SetUserMood updates the local user's mood.
func (e *Engine) SetUserMood(mood models.Mood) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.userMood = mood
	store.Save(KeyUserMood, e.userMood)
}

// refreshPreview updates the contact's denormalized last-message cache.
// Caller holds the lock.
func (e *Engine) refreshPreview(convID, text string) {
	now := time.Now().UnixMilli()
	for i := range e.contacts {
		if e.contacts[i].ID == convID {
			e.contacts[i].LastMessage = text
			e.contacts[i].LastSeen = now
			return
		}
	}
}
