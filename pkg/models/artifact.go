package models

// PlaceholderTag is the poetic tag an artifact carries between the
// synchronous crystallization phase and the enrichment call resolving.
const PlaceholderTag = "Crystallizing..."

// FallbackTag replaces the placeholder when enrichment fails or returns
// nothing.
const FallbackTag = "Memory"

// Artifact is a crystallized message. OriginalMessageID is a historical
// reference only; the message itself is removed from its conversation when
// the artifact is created. Artifacts are never deleted.
type Artifact struct {
	ID                string `json:"id"`
	OriginalMessageID string `json:"original_message_id"`
	Text              string `json:"text"`
	SenderName        string `json:"sender_name"`
	PoeticTag         string `json:"poetic_tag"`
	TS                int64  `json:"ts"` // source message creation time, unix millis
	Mood              Mood   `json:"mood"`
}

// ScheduledMessage is a deferred send recorded against a conversation.
// Delivery of due entries is an external concern.
type ScheduledMessage struct {
	ID           string `json:"id"`
	ChatID       string `json:"chat_id"`
	Text         string `json:"text"`
	ScheduledFor int64  `json:"scheduled_for"` // unix millis
}
