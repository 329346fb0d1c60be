package schedule

import (
	"sync"

	"github.com/google/uuid"

	"aura/pkg/logger"
	"aura/pkg/models"
	"aura/pkg/store"
	"aura/pkg/telemetry"
)

// KeyScheduled is the persistence key for the scheduled-send queue.
const KeyScheduled = "scheduledMessages"

// Queue records messages to be sent at a future time. Recording an entry
// has no side effect on any conversation; delivering due entries is an
// external concern, served by Due and Remove.
type Queue struct {
	mu    sync.Mutex
	items []models.ScheduledMessage
}

func NewQueue() *Queue {
	return &Queue{}
}

// Restore loads previously scheduled entries from the store.
func (q *Queue) Restore() {
	q.mu.Lock()
	defer q.mu.Unlock()
	store.Load(KeyScheduled, &q.items)
}

// Schedule appends an entry. No validation that the timestamp is in the
// future and no de-duplication; callers get exactly what they recorded.
func (q *Queue) Schedule(chatID, text string, epochMillis int64) models.ScheduledMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	sm := models.ScheduledMessage{
		ID:           uuid.NewString(),
		ChatID:       chatID,
		Text:         text,
		ScheduledFor: epochMillis,
	}
	q.items = append(q.items, sm)
	store.Save(KeyScheduled, q.items)
	telemetry.ScheduledSends.Inc()
	logger.Info("message_scheduled", "chat", chatID, "id", sm.ID, "at", epochMillis)
	return sm
}

// List returns a copy of all entries in insertion order.
func (q *Queue) List() []models.ScheduledMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.ScheduledMessage(nil), q.items...)
}

// Due returns the entries whose scheduled time is at or before now
// (unix millis), for an external deliverer to act on.
func (q *Queue) Due(nowMillis int64) []models.ScheduledMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []models.ScheduledMessage
	for _, sm := range q.items {
		if sm.ScheduledFor <= nowMillis {
			out = append(out, sm)
		}
	}
	return out
}

// Remove consumes an entry by id. Absent ids are a no-op.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, sm := range q.items {
		if sm.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			store.Save(KeyScheduled, q.items)
			return
		}
	}
}
