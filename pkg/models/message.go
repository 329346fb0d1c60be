package models

import "fmt"

// Sender identifies which side of a conversation authored a message.
type Sender string

const (
	SenderSelf Sender = "me"
	SenderPeer Sender = "them"
)

// Status is the delivery state of a message. Progression is
// sending -> sent -> delivered -> read -> received_with_love, but a message
// may stay at any intermediate state indefinitely. ReceivedWithLove is
// terminal.
type Status string

const (
	StatusSending          Status = "sending"
	StatusSent             Status = "sent"
	StatusDelivered        Status = "delivered"
	StatusRead             Status = "read"
	StatusReceivedWithLove Status = "received_with_love"
)

// Kind is the content kind of a message. Non-text kinds carry a
// kind-specific payload; see NewMessage for construction rules.
type Kind string

const (
	KindText     Kind = "text"
	KindImage    Kind = "image"
	KindVoice    Kind = "voice"
	KindFile     Kind = "file"
	KindSticker  Kind = "sticker"
	KindVideo    Kind = "video"
	KindLocation Kind = "location"
	KindContact  Kind = "contact"
	KindPoll     Kind = "poll"
	KindEvent    Kind = "event"
)

// Reaction is an emoji-keyed tally on a message. Count is always >= 1 while
// the entry exists; Me records whether the local user contributed to it.
type Reaction struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
	Me    bool   `json:"me"`
}

// ReplyRef is a denormalized snapshot of a quoted message, copied at
// creation time so it survives deletion of the original.
type ReplyRef struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// Attachment carries the payload for media kinds (image, voice, file,
// sticker, video).
type Attachment struct {
	URL      string `json:"url,omitempty"`
	FileName string `json:"file_name,omitempty"`
	FileSize string `json:"file_size,omitempty"`
	// DurationSec applies to voice and video.
	DurationSec int `json:"duration_sec,omitempty"`
}

// Location carries the payload for location messages.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// PollOption is one choice in a poll message. Votes holds contact ids.
type PollOption struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Votes []string `json:"votes,omitempty"`
}

// Message is one entry in a conversation's ordered history.
type Message struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Sender       Sender `json:"sender"`
	TS           int64  `json:"ts"` // creation time, unix millis
	Status       Status `json:"status"`
	Crystallized bool   `json:"crystallized"`
	Kind         Kind   `json:"kind"`

	ReplyTo   *ReplyRef  `json:"reply_to,omitempty"`
	Reactions []Reaction `json:"reactions,omitempty"`
	Starred   bool       `json:"starred,omitempty"`

	// Kind-specific payloads; exactly the one matching Kind is set.
	Attachment *Attachment  `json:"attachment,omitempty"`
	Location   *Location    `json:"location,omitempty"`
	Poll       []PollOption `json:"poll,omitempty"`

	// ExpiresAt is an optional unix-millis expiry for disappearing
	// messages; zero means the message never expires.
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// NewMessage validates that the payload matches the kind and returns the
// assembled message. Text-like kinds (text, sticker, contact, event) must
// carry no structured payload; media kinds require an attachment; location
// and poll require their respective payloads.
func NewMessage(id, text string, sender Sender, ts int64, kind Kind, att *Attachment, loc *Location, poll []PollOption) (Message, error) {
	m := Message{
		ID:     id,
		Text:   text,
		Sender: sender,
		TS:     ts,
		Status: StatusSent,
		Kind:   kind,
	}
	switch kind {
	case KindText, KindSticker, KindContact, KindEvent, "":
		if kind == "" {
			m.Kind = KindText
		}
		if att != nil || loc != nil || len(poll) > 0 {
			return Message{}, fmt.Errorf("kind %q does not take a payload", m.Kind)
		}
	case KindImage, KindVoice, KindFile, KindVideo:
		if att == nil {
			return Message{}, fmt.Errorf("kind %q requires an attachment", kind)
		}
		if loc != nil || len(poll) > 0 {
			return Message{}, fmt.Errorf("kind %q takes only an attachment payload", kind)
		}
		m.Attachment = att
	case KindLocation:
		if loc == nil {
			return Message{}, fmt.Errorf("location message requires coordinates")
		}
		if att != nil || len(poll) > 0 {
			return Message{}, fmt.Errorf("location message takes only a location payload")
		}
		m.Location = loc
	case KindPoll:
		if len(poll) == 0 {
			return Message{}, fmt.Errorf("poll message requires at least one option")
		}
		if att != nil || loc != nil {
			return Message{}, fmt.Errorf("poll message takes only poll options")
		}
		m.Poll = poll
	default:
		return Message{}, fmt.Errorf("unknown message kind %q", kind)
	}
	return m, nil
}

// Quote returns the immutable reply snapshot for this message.
func (m Message) Quote() *ReplyRef {
	return &ReplyRef{ID: m.ID, Text: m.Text, Sender: m.Sender}
}

// Expired reports whether the message's disappearing-message window has
// passed at the given time (unix millis).
func (m Message) Expired(nowMillis int64) bool {
	return m.ExpiresAt > 0 && nowMillis >= m.ExpiresAt
}
