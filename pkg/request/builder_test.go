package request

import (
	"testing"

	"github.com/attohttpc/attohttpc-go/pkg/httperr"
)

func TestNewRejectsConnect(t *testing.T) {
	b := New("CONNECT", "http://example.com")
	if _, err := b.Prepare(); !httperr.IsKind(err, httperr.KindConnectNotSupported) {
		t.Fatalf("got %v, want KindConnectNotSupported", err)
	}
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	b := New(MethodGet, "not a url")
	if _, err := b.Prepare(); !httperr.IsKind(err, httperr.KindInvalidBaseURL) {
		t.Fatalf("got %v, want KindInvalidBaseURL", err)
	}
}

func TestNewRejectsMissingHost(t *testing.T) {
	b := New(MethodGet, "http://")
	if _, err := b.Prepare(); !httperr.IsKind(err, httperr.KindInvalidBaseURL) {
		t.Fatalf("got %v, want KindInvalidBaseURL", err)
	}
}

func TestStickyErrorShortCircuitsLaterCalls(t *testing.T) {
	b := New("CONNECT", "http://example.com").Header("X-A", "1").Param("q", "1").Text("body")
	_, err := b.Prepare()
	if !httperr.IsKind(err, httperr.KindConnectNotSupported) {
		t.Fatalf("expected the first error to survive later chained calls, got %v", err)
	}
}

func TestTryHeaderRejectsInvalidName(t *testing.T) {
	b := New(MethodGet, "http://example.com").TryHeader("Bad Name", "v")
	if _, err := b.Prepare(); err == nil {
		t.Fatal("expected error for invalid header name")
	}
}

func TestTryHeaderRejectsCRLFInValue(t *testing.T) {
	b := New(MethodGet, "http://example.com").TryHeader("X-A", "v\r\nInjected: true")
	if _, err := b.Prepare(); err == nil {
		t.Fatal("expected error for CRLF in header value")
	}
}

func TestPrepareMergesBuilderHeadersAtopSettingsDefaults(t *testing.T) {
	b := New(MethodGet, "http://example.com")
	b.settings.Headers.Set("X-Default", "from-settings")
	b.Header("X-Own", "from-builder")

	req, err := b.Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if v, ok := req.Headers.Get("X-Default"); !ok || v != "from-settings" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if v, ok := req.Headers.Get("X-Own"); !ok || v != "from-builder" {
		t.Fatalf("got %q, %v", v, ok)
	}
}

func TestPrepareBuilderHeaderOverridesSettingsDefault(t *testing.T) {
	b := New(MethodGet, "http://example.com")
	b.settings.Headers.Set("X-Shared", "from-settings")
	b.Header("X-Shared", "from-builder")

	req, err := b.Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if v, _ := req.Headers.Get("X-Shared"); v != "from-builder" {
		t.Fatalf("got %q, want builder value to win", v)
	}
}

func TestParamAddsQueryString(t *testing.T) {
	req, err := New(MethodGet, "http://example.com/r").Param("x", "1").Param("y", "2").Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if req.URL.Query().Get("x") != "1" || req.URL.Query().Get("y") != "2" {
		t.Fatalf("got query %q", req.URL.RawQuery)
	}
}

func TestBearerAuthSetsAuthorizationHeader(t *testing.T) {
	req, err := New(MethodGet, "http://example.com").BearerAuth("tok123").Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if v, _ := req.Headers.Get("Authorization"); v != "Bearer tok123" {
		t.Fatalf("got %q", v)
	}
}

func TestMultipartRejectsBadMimeType(t *testing.T) {
	b := New(MethodPost, "http://example.com").Multipart([]MultipartField{
		{Name: "file", FileName: "a.txt", MimeType: ";;;not-a-mime", Content: []byte("x")},
	})
	if _, err := b.Prepare(); !httperr.IsKind(err, httperr.KindInvalidMimeType) {
		t.Fatalf("got %v, want KindInvalidMimeType", err)
	}
}
