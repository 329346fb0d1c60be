package chat

import (
	"time"

	"aura/pkg/models"
)

// Initial roster and conversations used when the store holds no prior
// state. Timestamps are relative to process start so the seed always looks
// recent.

func seedContacts() []models.Contact {
	now := time.Now().UnixMilli()
	return []models.Contact{
		{
			ID: "c1", Name: "Sarah Chen", Mood: models.MoodSerene, Affinity: 0.95,
			IsOnline: true, LastSeen: now,
			About:       "Capturing light in the digital void.",
			LastMessage: "The exhibition opens tonight at 8. You coming?",
		},
		{
			ID: "c2", Name: "Marcus Thorne", Mood: models.MoodEnergetic, Affinity: 0.88,
			LastSeen: now - 20*minuteMs,
			About:       "Architecting the future.",
			LastMessage: "Just sent over the blueprints. Let me know what you think.",
		},
		{
			ID: "c3", Name: "Elara Vance", Mood: models.MoodMelancholic, Affinity: 0.75,
			LastSeen: now - dayMs,
			About:       "Lost in the music.",
			LastMessage: "I need some space to think about this.",
		},
		{
			ID: "c4", Name: "Design Team Alpha", Mood: models.MoodNeutral, Affinity: 0.6,
			IsGroup: true, Members: []string{"c1", "c2", "me"},
			About:       "Official channel for Project Nebula.",
			LastMessage: "Sarah: Updated the Figma file.",
		},
		{
			ID: "c5", Name: "Hiroshi Tanaka", Mood: models.MoodJoyful, Affinity: 0.5,
			IsOnline: true,
			About:       "Tech enthusiast & Foodie.",
			LastMessage: "Ramen tonight? 🍜",
		},
	}
}

const (
	minuteMs = int64(60 * 1000)
	hourMs   = 60 * minuteMs
	dayMs    = 24 * hourMs
)

func seedHistory() map[string][]models.Message {
	now := time.Now().UnixMilli()
	text := func(id, body string, sender models.Sender, ts int64, status models.Status) models.Message {
		return models.Message{ID: id, Text: body, Sender: sender, TS: ts, Status: status, Kind: models.KindText}
	}
	return map[string][]models.Message{
		"c1": {
			text("m1", "Are you still shooting with that old Canon?", models.SenderPeer, now-2*dayMs, models.StatusRead),
			text("m2", "Yeah, I love the grain on it. Why?", models.SenderSelf, now-2*dayMs+100*1000, models.StatusRead),
			text("m3", "Just curious. I'm selling my Leica if you're interested.", models.SenderPeer, now-2*dayMs+200*1000, models.StatusRead),
			text("m4", "The exhibition opens tonight at 8. You coming?", models.SenderPeer, now-hourMs, models.StatusDelivered),
		},
		"c2": {
			func() models.Message {
				m := text("m5", "Project update: Client loved the render.", models.SenderPeer, now-dayMs, models.StatusRead)
				m.Reactions = []models.Reaction{{Emoji: "🔥", Count: 1, Me: true}}
				return m
			}(),
			text("m6", "That's huge news! Congrats Marcus.", models.SenderSelf, now-dayMs+100*1000, models.StatusRead),
			text("m7", "Just sent over the blueprints. Let me know what you think.", models.SenderPeer, now-20*minuteMs, models.StatusReceivedWithLove),
		},
		"c3": {
			text("m8", "Hey...", models.SenderPeer, now-3*dayMs, models.StatusRead),
			text("m9", "Are we still on for the concert?", models.SenderSelf, now-3*dayMs+100*1000, models.StatusRead),
			func() models.Message {
				m := text("m10", "I need some space to think about this.", models.SenderPeer, now-3*dayMs+200*1000, models.StatusRead)
				m.Crystallized = true
				return m
			}(),
		},
		"c4": {
			text("m11", "Meeting in 5 mins.", models.SenderPeer, now-7*minuteMs, models.StatusRead),
			text("m12", "Sarah: Updated the Figma file.", models.SenderPeer, now-5*minuteMs, models.StatusRead),
		},
	}
}
