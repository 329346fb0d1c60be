package models

// Mood is a coarse emotional state attached to contacts and the local user.
// It feeds the reply prompt and is stamped on artifacts at crystallization.
type Mood string

const (
	MoodSerene      Mood = "serene"
	MoodJoyful      Mood = "joyful"
	MoodMelancholic Mood = "melancholic"
	MoodEnergetic   Mood = "energetic"
	MoodNeutral     Mood = "neutral"
)

// ValidMood reports whether m is one of the known moods.
func ValidMood(m Mood) bool {
	switch m {
	case MoodSerene, MoodJoyful, MoodMelancholic, MoodEnergetic, MoodNeutral:
		return true
	}
	return false
}

// Contact is one entry in the roster. LastMessage and LastSeen are
// denormalized caches refreshed whenever a message lands in the contact's
// conversation.
type Contact struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Mood     Mood     `json:"mood"`
	IsGroup  bool     `json:"is_group,omitempty"`
	Members  []string `json:"members,omitempty"`
	IsOnline bool     `json:"is_online,omitempty"`
	About    string   `json:"about,omitempty"`
	// Affinity is the 0..1 closeness score used in the reply prompt.
	Affinity float64 `json:"affinity"`

	LastMessage string `json:"last_message,omitempty"`
	LastSeen    int64  `json:"last_seen,omitempty"` // unix millis
}
