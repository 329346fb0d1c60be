package chat

import "aura/pkg/models"

// ToggleReaction applies the local user's reaction toggle for one emoji on
// one message:
//
//   - no entry yet: create {emoji, count 1, me}
//   - entry exists and me: count <= 1 removes the entry outright, otherwise
//     decrement and drop me
//   - entry exists and not me: increment and set me
//
// The local user therefore contributes at most 1 to any emoji's count, and
// removing one's own sole reaction deletes the entry instead of leaving a
// zero-count ghost.
func (e *Engine) ToggleReaction(convID, msgID, emoji string) {
	e.MapMessage(convID, msgID, func(m models.Message) models.Message {
		m.Reactions = toggleReaction(m.Reactions, emoji)
		return m
	})
}

func toggleReaction(rs []models.Reaction, emoji string) []models.Reaction {
	for i, r := range rs {
		if r.Emoji != emoji {
			continue
		}
		if r.Me {
			if r.Count <= 1 {
				out := make([]models.Reaction, 0, len(rs)-1)
				out = append(out, rs[:i]...)
				return append(out, rs[i+1:]...)
			}
			out := append([]models.Reaction(nil), rs...)
			out[i].Count--
			out[i].Me = false
			return out
		}
		out := append([]models.Reaction(nil), rs...)
		out[i].Count++
		out[i].Me = true
		return out
	}
	return append(append([]models.Reaction(nil), rs...), models.Reaction{Emoji: emoji, Count: 1, Me: true})
}
