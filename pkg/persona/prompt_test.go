package persona

import (
	"context"
	"strings"
	"testing"

	"aura/pkg/models"
)

func TestReplyPromptAlternatesSpeakers(t *testing.T) {
	contact := models.Contact{ID: "c1", Name: "Sarah Chen", Mood: models.MoodSerene, Affinity: 0.95}
	history := []models.Message{
		{Text: "Are you coming?", Sender: models.SenderPeer},
		{Text: "Wouldn't miss it.", Sender: models.SenderSelf},
	}
	p := replyPrompt(contact, history)
	if !strings.Contains(p, "Sarah Chen: Are you coming?\n") {
		t.Fatalf("peer line missing:\n%s", p)
	}
	if !strings.Contains(p, "User: Wouldn't miss it.\n") {
		t.Fatalf("user line missing:\n%s", p)
	}
	if !strings.HasSuffix(p, "Sarah Chen:") {
		t.Fatalf("prompt must leave the contact's turn open:\n%s", p)
	}
}

func TestReplySystemInstructionCarriesContext(t *testing.T) {
	contact := models.Contact{Name: "Elara Vance", Mood: models.MoodMelancholic, Affinity: 0.75}
	s := replySystemInstruction(contact, models.MoodJoyful)
	for _, frag := range []string{"Elara Vance", "melancholic", "joyful", "75%"} {
		if !strings.Contains(s, frag) {
			t.Fatalf("instruction missing %q:\n%s", frag, s)
		}
	}
}

func TestTagPromptNamesSenderAndMessage(t *testing.T) {
	p := tagPrompt("I need some space to think about this.", "Elara Vance")
	if !strings.Contains(p, "Elara Vance") || !strings.Contains(p, "I need some space") {
		t.Fatalf("tag prompt missing context:\n%s", p)
	}
	if !strings.Contains(p, "poeticTag") {
		t.Fatalf("tag prompt must request the JSON field:\n%s", p)
	}
}

func TestKeylessGeminiDegradesGracefully(t *testing.T) {
	g, err := NewGemini(context.Background(), "", "")
	if err != nil {
		t.Fatalf("keyless construction must not fail: %v", err)
	}
	reply, err := g.GenerateReply(context.Background(), models.Contact{Name: "Sarah"}, nil, models.MoodNeutral)
	if err != nil || reply != MissingKeyReply {
		t.Fatalf("expected canned reply, got %q, %v", reply, err)
	}
	tag, err := g.CrystallizeTag(context.Background(), "text", "Sarah")
	if err != nil || tag != MissingKeyTag {
		t.Fatalf("expected canned tag, got %q, %v", tag, err)
	}
}
