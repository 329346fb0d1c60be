package models

import "testing"

func TestNewMessageDefaultsToText(t *testing.T) {
	m, err := NewMessage("m1", "hello", SenderSelf, 1000, "", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind != KindText {
		t.Fatalf("expected kind text, got %q", m.Kind)
	}
	if m.Status != StatusSent {
		t.Fatalf("expected status sent, got %q", m.Status)
	}
}

func TestNewMessageRejectsPayloadOnTextKinds(t *testing.T) {
	att := &Attachment{URL: "file://x"}
	if _, err := NewMessage("m1", "hi", SenderSelf, 1000, KindText, att, nil, nil); err == nil {
		t.Fatalf("expected error for text message with attachment")
	}
	if _, err := NewMessage("m2", "hi", SenderSelf, 1000, KindSticker, nil, &Location{Lat: 1, Lng: 2}, nil); err == nil {
		t.Fatalf("expected error for sticker message with location")
	}
}

func TestNewMessageMediaRequiresAttachment(t *testing.T) {
	for _, k := range []Kind{KindImage, KindVoice, KindFile, KindVideo} {
		if _, err := NewMessage("m1", "", SenderSelf, 1000, k, nil, nil, nil); err == nil {
			t.Fatalf("expected error for %q without attachment", k)
		}
		m, err := NewMessage("m2", "", SenderSelf, 1000, k, &Attachment{URL: "file://x"}, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", k, err)
		}
		if m.Attachment == nil {
			t.Fatalf("attachment not carried for %q", k)
		}
	}
}

func TestNewMessageLocationAndPoll(t *testing.T) {
	if _, err := NewMessage("m1", "", SenderSelf, 1000, KindLocation, nil, nil, nil); err == nil {
		t.Fatalf("expected error for location without coordinates")
	}
	if _, err := NewMessage("m2", "", SenderSelf, 1000, KindPoll, nil, nil, nil); err == nil {
		t.Fatalf("expected error for poll without options")
	}
	m, err := NewMessage("m3", "where?", SenderSelf, 1000, KindLocation, nil, &Location{Lat: 35.6, Lng: 139.7, Name: "Shibuya"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Location == nil || m.Location.Name != "Shibuya" {
		t.Fatalf("location payload not carried: %+v", m.Location)
	}
}

func TestNewMessageUnknownKind(t *testing.T) {
	if _, err := NewMessage("m1", "hi", SenderSelf, 1000, Kind("hologram"), nil, nil, nil); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestQuoteSnapshot(t *testing.T) {
	m := Message{ID: "m1", Text: "original", Sender: SenderPeer}
	q := m.Quote()
	if q.ID != "m1" || q.Text != "original" || q.Sender != SenderPeer {
		t.Fatalf("bad quote: %+v", q)
	}
}

func TestExpired(t *testing.T) {
	m := Message{ExpiresAt: 0}
	if m.Expired(1 << 50) {
		t.Fatalf("zero expiry must never expire")
	}
	m.ExpiresAt = 1000
	if m.Expired(999) {
		t.Fatalf("not yet due")
	}
	if !m.Expired(1000) {
		t.Fatalf("due at exact expiry")
	}
}
