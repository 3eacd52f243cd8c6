package basestream

import "testing"

func TestParseConnectStatusOK(t *testing.T) {
	if got := parseConnectStatus([]byte("HTTP/1.1 200 Connection established")); got != 200 {
		t.Fatalf("got %d, want 200", got)
	}
}

func TestParseConnectStatusForbidden(t *testing.T) {
	if got := parseConnectStatus([]byte("HTTP/1.1 403 Forbidden")); got != 403 {
		t.Fatalf("got %d, want 403", got)
	}
}

func TestParseConnectStatusMalformedReturnsZero(t *testing.T) {
	if got := parseConnectStatus([]byte("garbage")); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if got := parseConnectStatus([]byte("HTTP/1.1 abc Nope")); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestSplitFieldsCollapsesRepeatedSpaces(t *testing.T) {
	got := splitFields([]byte("HTTP/1.1   200  OK"))
	if len(got) != 3 || string(got[0]) != "HTTP/1.1" || string(got[1]) != "200" || string(got[2]) != "OK" {
		t.Fatalf("got %v", got)
	}
}
