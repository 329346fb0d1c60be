package artifacts

import (
	"context"

	"github.com/google/uuid"

	"aura/pkg/chat"
	"aura/pkg/logger"
	"aura/pkg/models"
	"aura/pkg/telemetry"
)

// Tagger is the external enrichment collaborator: it turns a message into
// a short poetic tag. Failures are recovered with models.FallbackTag.
type Tagger interface {
	CrystallizeTag(ctx context.Context, messageText, senderName string) (string, error)
}

// Crystallizer archives messages as artifacts. The synchronous phase makes
// the placeholder artifact visible and removes the source message before
// the asynchronous enrichment begins; enrichment failure never rolls the
// archival back.
type Crystallizer struct {
	engine *chat.Engine
	col    *Collection
	tagger Tagger
}

func NewCrystallizer(engine *chat.Engine, col *Collection, tagger Tagger) *Crystallizer {
	return &Crystallizer{engine: engine, col: col, tagger: tagger}
}

// Crystallize converts the message into an artifact. The returned artifact
// carries the placeholder tag; the same artifact id is retagged in place
// once the enrichment call resolves.
func (cr *Crystallizer) Crystallize(ctx context.Context, convID string, msg models.Message) models.Artifact {
	senderName := "Them"
	contact, ok := cr.engine.Contact(convID)
	mood := models.MoodNeutral
	if ok {
		senderName = contact.Name
		mood = contact.Mood
	}
	if msg.Sender == models.SenderSelf {
		senderName = "You"
	}

	a := models.Artifact{
		ID:                uuid.NewString(),
		OriginalMessageID: msg.ID,
		Text:              msg.Text,
		SenderName:        senderName,
		PoeticTag:         models.PlaceholderTag,
		TS:                msg.TS,
		Mood:              mood,
	}
	cr.col.Prepend(a)
	cr.engine.MarkCrystallized(convID, msg.ID)
	cr.engine.Remove(convID, msg.ID)
	telemetry.Crystallizations.Inc()
	logger.Info("message_crystallized", "conversation", convID, "message", msg.ID, "artifact", a.ID)

	// Enrichment is fire-and-forget: it must outlive the caller's request
	// context, and there is no way to cancel it once started.
	tagCtx := context.WithoutCancel(ctx)
	go func() {
		tag, err := cr.tagger.CrystallizeTag(tagCtx, msg.Text, senderName)
		if err != nil || tag == "" {
			logger.Warn("crystallize_tag_failed", "artifact", a.ID, "error", err)
			telemetry.TagFallbacks.Inc()
			tag = models.FallbackTag
		}
		cr.col.Retag(a.ID, tag)
	}()
	return a
}
