package store

import (
	"testing"
)

func openTestStore(t *testing.T) {
	t.Helper()
	if err := Open(t.TempDir()); err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	openTestStore(t)
	in := map[string][]string{"c1": {"hello", "world"}}
	Save("chatHistory", in)

	var out map[string][]string
	if !Load("chatHistory", &out) {
		t.Fatalf("expected stored value")
	}
	if len(out["c1"]) != 2 || out["c1"][0] != "hello" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestLoadMissingKeyLeavesDefault(t *testing.T) {
	openTestStore(t)
	out := []string{"default"}
	if Load("nothing", &out) {
		t.Fatalf("missing key must report false")
	}
	if len(out) != 1 || out[0] != "default" {
		t.Fatalf("default clobbered: %+v", out)
	}
}

func TestUnopenedStoreIsInert(t *testing.T) {
	if Ready() {
		t.Fatalf("store should start closed")
	}
	Save("k", "v") // must not panic
	var out string
	if Load("k", &out) {
		t.Fatalf("closed store must not load")
	}
	if err := Clear(); err == nil {
		t.Fatalf("clear on closed store must error")
	}
}

func TestClearWipesNamespace(t *testing.T) {
	openTestStore(t)
	Save("contacts", []string{"c1"})
	Save("artifacts", []string{"a1"})
	if err := Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	keys, err := ListKeys()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("namespace not empty after clear: %v", keys)
	}
}

func TestListKeysAndGetRaw(t *testing.T) {
	openTestStore(t)
	Save("userMood", "serene")
	keys, err := ListKeys()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 1 || keys[0] != "userMood" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	raw, err := GetRaw("userMood")
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if raw != `"serene"` {
		t.Fatalf("unexpected raw value: %s", raw)
	}
}
