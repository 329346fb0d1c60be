package persona

import (
	"fmt"
	"strings"

	"aura/pkg/models"
)

// replySystemInstruction frames the roleplay: the model speaks as the
// contact, shaded by both moods and the closeness score.
func replySystemInstruction(contact models.Contact, userMood models.Mood) string {
	return fmt.Sprintf(`You are roleplaying as %s, a close friend of the user in an app called "Aura".

Current Context:
- Your mood is currently: %s.
- The user's mood is: %s.
- Your closeness (affinity) is: %.0f%%.

Style Guide:
- Keep responses relatively short, intimate, and conversational.
- If your mood is 'melancholic', be softer and slower.
- If 'joyful', be bright.
- If 'serene', be calm.
- Do not use hashtags or formal language.
- This is a "slow communication" app, so your messages should feel thoughtful.`,
		contact.Name, contact.Mood, userMood, contact.Affinity*100)
}

// replyPrompt renders the history snapshot as alternating speaker lines
// and leaves the contact's turn open.
func replyPrompt(contact models.Contact, history []models.Message) string {
	var b strings.Builder
	for _, m := range history {
		speaker := contact.Name
		if m.Sender == models.SenderSelf {
			speaker = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Text)
	}
	fmt.Fprintf(&b, "%s:", contact.Name)
	return b.String()
}

func tagPrompt(messageText, senderName string) string {
	return fmt.Sprintf(`Analyze this message sent by %s: %q

Create a very short, poetic 2-4 word title/tag for this memory.

Return pure JSON format:
{
  "poeticTag": "string"
}`, senderName, messageText)
}
