package session

import "testing"

func TestVerbConstructorsApplySessionSettings(t *testing.T) {
	s := New()
	s.MaxRedirections(2)
	s.Header("X-Session", "shared")

	req, err := s.Get("http://example.com/a").Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if req.Settings.MaxRedirections != 2 {
		t.Fatalf("got MaxRedirections %d, want 2", req.Settings.MaxRedirections)
	}
	if v, ok := req.Headers.Get("X-Session"); !ok || v != "shared" {
		t.Fatalf("got X-Session %q, %v", v, ok)
	}
}

func TestMutatorsDoNotLeakIntoPriorlyPreparedRequests(t *testing.T) {
	s := New()
	first, err := s.Get("http://example.com/a").Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	s.Header("X-Late", "added-after")

	if first.Headers.Has("X-Late") {
		t.Fatal("a header added to the session after Prepare leaked into the already-prepared request")
	}

	second, err := s.Get("http://example.com/b").Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if v, ok := second.Headers.Get("X-Late"); !ok || v != "added-after" {
		t.Fatalf("expected a later request to see the session-level header, got %q, %v", v, ok)
	}
}

func TestEachVerbUsesItsOwnMethod(t *testing.T) {
	s := New()

	if req, err := s.Post("http://example.com").Prepare(); err != nil || req.Method != "POST" {
		t.Fatalf("Post: req=%v err=%v", req, err)
	}
	if req, err := s.Put("http://example.com").Prepare(); err != nil || req.Method != "PUT" {
		t.Fatalf("Put: req=%v err=%v", req, err)
	}
	if req, err := s.Delete("http://example.com").Prepare(); err != nil || req.Method != "DELETE" {
		t.Fatalf("Delete: req=%v err=%v", req, err)
	}
}
