package constants

import (
	"strings"
	"testing"
)

func TestDefaultUserAgentTracksVersion(t *testing.T) {
	if !strings.HasSuffix(DefaultUserAgent, Version) {
		t.Fatalf("got %q, want it to end with Version %q", DefaultUserAgent, Version)
	}
}
