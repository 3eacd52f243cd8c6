package settings

import (
	"testing"

	"github.com/attohttpc/attohttpc-go/pkg/cookiejar"
)

func TestDefaultMatchesDocumentedDefaults(t *testing.T) {
	s := Default()
	if s.MaxHeaders != 100 {
		t.Fatalf("got MaxHeaders %d, want 100", s.MaxHeaders)
	}
	if s.MaxRedirections != 5 {
		t.Fatalf("got MaxRedirections %d, want 5", s.MaxRedirections)
	}
	if !s.FollowRedirects {
		t.Fatal("expected FollowRedirects true by default")
	}
	if !s.AllowCompression {
		t.Fatal("expected AllowCompression true by default")
	}
	if s.Timeout != 0 {
		t.Fatalf("got Timeout %v, want 0 (no whole-request deadline)", s.Timeout)
	}
	if s.Logger == nil {
		t.Fatal("expected a default logger")
	}
}

func TestCloneHeadersAreIndependent(t *testing.T) {
	s := Default()
	s.Headers.Set("X-A", "1")
	c := s.Clone()
	c.Headers.Set("X-A", "2")
	c.Headers.Set("X-B", "new")

	if v, _ := s.Headers.Get("X-A"); v != "1" {
		t.Fatalf("mutating clone's headers leaked back: got %q", v)
	}
	if s.Headers.Has("X-B") {
		t.Fatal("clone-only header leaked into original")
	}
}

func TestCloneSharesJarAndLoggerByReference(t *testing.T) {
	s := Default()
	jar, err := cookiejar.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	s.Jar = jar
	c := s.Clone()
	if c.Jar != s.Jar {
		t.Fatal("expected Clone to share the cookie jar by reference")
	}
	if c.Logger != s.Logger {
		t.Fatal("expected Clone to share the logger by reference")
	}
}

func TestCloneProxyNoProxyHostsIndependent(t *testing.T) {
	s := Default()
	s.Proxy.NoProxyHosts = []string{"a.example.com"}
	c := s.Clone()
	c.Proxy.NoProxyHosts = append(c.Proxy.NoProxyHosts, "b.example.com")
	if len(s.Proxy.NoProxyHosts) != 1 {
		t.Fatalf("mutating clone's NoProxyHosts leaked back: %v", s.Proxy.NoProxyHosts)
	}
}
