package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aura/pkg/api/handlers"
	"aura/pkg/artifacts"
	"aura/pkg/chat"
	"aura/pkg/models"
	"aura/pkg/reply"
	"aura/pkg/schedule"
)

type stubGen struct{ text string }

func (s stubGen) GenerateReply(ctx context.Context, contact models.Contact, history []models.Message, userMood models.Mood) (string, error) {
	return s.text, nil
}

type stubTagger struct{ tag string }

func (s stubTagger) CrystallizeTag(ctx context.Context, messageText, senderName string) (string, error) {
	return s.tag, nil
}

func setupServer(t *testing.T) (*httptest.Server, handlers.Deps) {
	t.Helper()
	engine := chat.NewEngine()
	engine.Restore()
	sched := reply.NewScheduler(engine, stubGen{text: "stubbed reply"}, time.Millisecond, 5*time.Millisecond)
	sched.Start(context.Background())
	t.Cleanup(sched.Stop)
	col := artifacts.NewCollection()
	d := handlers.Deps{
		Engine:       engine,
		Scheduler:    sched,
		Crystallizer: artifacts.NewCrystallizer(engine, col, stubTagger{tag: "Test Tag"}),
		Artifacts:    col,
		Scheduled:    schedule.NewQueue(),
	}
	srv := httptest.NewServer(Handler(d))
	t.Cleanup(srv.Close)
	return srv, d
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var out T
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	srv, _ := setupServer(t)
	res, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %v", res.Status)
	}
}

func TestListContacts(t *testing.T) {
	srv, _ := setupServer(t)
	res := doJSON(t, http.MethodGet, srv.URL+"/v1/contacts", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %v", res.Status)
	}
	out := decode[struct {
		Contacts []models.Contact `json:"contacts"`
	}](t, res)
	if len(out.Contacts) != 5 {
		t.Fatalf("expected 5 seed contacts, got %d", len(out.Contacts))
	}
}

func TestSendMessageReturnsItAndRepliesLand(t *testing.T) {
	srv, d := setupServer(t)
	before := len(d.Engine.Messages("c1"))

	res := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages", map[string]any{"text": "Hello"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %v", res.Status)
	}
	m := decode[models.Message](t, res)
	if m.ID == "" || m.Sender != models.SenderSelf || m.Kind != models.KindText {
		t.Fatalf("bad message echo: %+v", m)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if len(d.Engine.Messages("c1")) >= before+2 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	msgs := d.Engine.Messages("c1")
	if len(msgs) < before+2 {
		t.Fatalf("reply never landed, have %d messages", len(msgs))
	}
	if got := msgs[len(msgs)-1].Text; got != "stubbed reply" {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestSendMessageValidatesKindPayload(t *testing.T) {
	srv, _ := setupServer(t)
	res := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages", map[string]any{
		"text": "bad", "kind": "image",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("image without attachment must 400, got %v", res.Status)
	}
}

func TestSendMessageQuotesReplyTo(t *testing.T) {
	srv, d := setupServer(t)
	res := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages", map[string]any{
		"text": "about that", "reply_to": "m1",
	})
	m := decode[models.Message](t, res)
	if m.ReplyTo == nil || m.ReplyTo.ID != "m1" {
		t.Fatalf("quote not snapshotted: %+v", m.ReplyTo)
	}
	// The snapshot survives deleting the original.
	del := doJSON(t, http.MethodDelete, srv.URL+"/v1/conversations/c1/messages/m1", nil)
	del.Body.Close()
	for _, got := range d.Engine.Messages("c1") {
		if got.ID == m.ID && (got.ReplyTo == nil || got.ReplyTo.Text == "") {
			t.Fatalf("quote lost after source deletion")
		}
	}
}

func TestReactionStarAcknowledgeEndpoints(t *testing.T) {
	srv, d := setupServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages/m1/reactions", map[string]any{"emoji": "✨"})
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("reaction: %v", res.Status)
	}
	res = doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages/m1/star", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("star: %v", res.Status)
	}
	res = doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages/m1/acknowledge", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("acknowledge: %v", res.Status)
	}

	m := d.Engine.Messages("c1")[0]
	if len(m.Reactions) != 1 || !m.Starred || m.Status != models.StatusReceivedWithLove {
		t.Fatalf("mutations not applied: %+v", m)
	}
}

func TestReactionRequiresEmoji(t *testing.T) {
	srv, _ := setupServer(t)
	res := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages/m1/reactions", map[string]any{})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", res.Status)
	}
}

func TestCrystallizeEndpoint(t *testing.T) {
	srv, d := setupServer(t)
	res := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages/m1/crystallize", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %v", res.Status)
	}
	a := decode[models.Artifact](t, res)
	if a.PoeticTag != models.PlaceholderTag {
		t.Fatalf("expected placeholder tag, got %q", a.PoeticTag)
	}
	for _, m := range d.Engine.Messages("c1") {
		if m.ID == "m1" {
			t.Fatalf("crystallized message still listed")
		}
	}

	res = doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages/m1/crystallize", nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("second crystallize must 404, got %v", res.Status)
	}
}

func TestTypingEndpoint(t *testing.T) {
	srv, _ := setupServer(t)
	res := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/c1/messages", map[string]any{"text": "hi"})
	res.Body.Close()

	res = doJSON(t, http.MethodGet, srv.URL+"/v1/conversations/c1/typing", nil)
	out := decode[struct {
		Typing bool `json:"typing"`
	}](t, res)
	if !out.Typing {
		t.Fatalf("typing should be raised right after a send")
	}
}

func TestGlobalMoodEndpoint(t *testing.T) {
	srv, d := setupServer(t)
	res := doJSON(t, http.MethodPut, srv.URL+"/v1/mood", map[string]any{"mood": "joyful"})
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %v", res.Status)
	}
	if d.Engine.UserMood() != models.MoodJoyful {
		t.Fatalf("user mood not set: %q", d.Engine.UserMood())
	}
	for _, c := range d.Engine.Contacts() {
		if c.Mood != models.MoodJoyful {
			t.Fatalf("contact %s missed the mood", c.ID)
		}
	}

	res = doJSON(t, http.MethodPut, srv.URL+"/v1/mood", map[string]any{"mood": "furious"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown mood must 400, got %v", res.Status)
	}
}

func TestContactMoodEndpoint(t *testing.T) {
	srv, d := setupServer(t)
	res := doJSON(t, http.MethodPut, srv.URL+"/v1/contacts/c3/mood", map[string]any{"mood": "serene"})
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %v", res.Status)
	}
	c, _ := d.Engine.Contact("c3")
	if c.Mood != models.MoodSerene {
		t.Fatalf("mood not applied: %q", c.Mood)
	}
}

func TestScheduledEndpoints(t *testing.T) {
	srv, _ := setupServer(t)

	res := doJSON(t, http.MethodPost, srv.URL+"/v1/scheduled", map[string]any{
		"chat_id": "c4", "text": "later", "scheduled_for": time.Now().UnixMilli() + 3_600_000,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("schedule: %v", res.Status)
	}
	sm := decode[models.ScheduledMessage](t, res)
	if sm.ID == "" || sm.ChatID != "c4" {
		t.Fatalf("bad scheduled entry: %+v", sm)
	}

	res = doJSON(t, http.MethodGet, srv.URL+"/v1/scheduled", nil)
	out := decode[struct {
		Scheduled []models.ScheduledMessage `json:"scheduled"`
	}](t, res)
	if len(out.Scheduled) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out.Scheduled))
	}

	res = doJSON(t, http.MethodPost, srv.URL+"/v1/scheduled", map[string]any{"text": "no chat"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing chat_id must 400, got %v", res.Status)
	}
}

func TestListMessagesOpensConversation(t *testing.T) {
	srv, _ := setupServer(t)
	res := doJSON(t, http.MethodGet, srv.URL+"/v1/conversations/brand-new/messages", nil)
	out := decode[struct {
		Conversation string           `json:"conversation"`
		Messages     []models.Message `json:"messages"`
	}](t, res)
	if out.Conversation != "brand-new" || len(out.Messages) != 0 {
		t.Fatalf("expected fresh empty conversation, got %+v", out)
	}
}

func TestArtifactsEndpoint(t *testing.T) {
	srv, d := setupServer(t)
	d.Artifacts.Prepend(models.Artifact{ID: "a1", PoeticTag: "First Light"})
	res := doJSON(t, http.MethodGet, srv.URL+"/v1/artifacts", nil)
	out := decode[struct {
		Artifacts []models.Artifact `json:"artifacts"`
	}](t, res)
	if len(out.Artifacts) != 1 || out.Artifacts[0].PoeticTag != "First Light" {
		t.Fatalf("artifact listing: %+v", out.Artifacts)
	}
}
