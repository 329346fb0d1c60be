package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"aura/pkg/logger"
	"aura/pkg/models"
)

// Canned responses used when no API key is configured, so the simulator
// stays usable offline.
const (
	MissingKeyReply = "I'm listening (Gemini API Key missing)."
	MissingKeyTag   = "A Forgotten Memory"
)

const defaultModel = "gemini-2.5-flash"

// Gemini implements both the reply and the tag generation collaborators on
// top of Google's Gemini API. A Gemini with no client (empty API key)
// degrades to fixed responses instead of failing.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = defaultModel
	}
	if strings.TrimSpace(apiKey) == "" {
		logger.Warn("gemini_key_missing", "model", model)
		return &Gemini{model: model}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// GenerateReply roleplays the contact over the frozen history snapshot.
func (g *Gemini) GenerateReply(ctx context.Context, contact models.Contact, history []models.Message, userMood models.Mood) (string, error) {
	if g.client == nil {
		return MissingKeyReply, nil
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(replyPrompt(contact, history)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(replySystemInstruction(contact, userMood), genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.8),
			MaxOutputTokens:   100,
		})
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		text = "..."
	}
	return text, nil
}

// CrystallizeTag asks for a 2-4 word poetic tag for the message.
func (g *Gemini) CrystallizeTag(ctx context.Context, messageText, senderName string) (string, error) {
	if g.client == nil {
		return MissingKeyTag, nil
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(tagPrompt(messageText, senderName)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
	if err != nil {
		return "", fmt.Errorf("crystallize tag: %w", err)
	}
	var out struct {
		PoeticTag string `json:"poeticTag"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &out); err != nil {
		return "", fmt.Errorf("decode tag response: %w", err)
	}
	return strings.TrimSpace(out.PoeticTag), nil
}
