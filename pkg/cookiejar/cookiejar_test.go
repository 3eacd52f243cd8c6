package cookiejar

import (
	"net/url"
	"strings"
	"testing"
)

func TestStoreAndRetrieveRoundTrip(t *testing.T) {
	jar, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	u, _ := url.Parse("http://example.com/")
	jar.StoreCookiesForURL(u, []string{"a=1", "b=2"})

	got, ok := jar.HeaderValueForURL(u)
	if !ok {
		t.Fatal("expected cookies to be present")
	}
	if !strings.Contains(got, "a=1") || !strings.Contains(got, "b=2") {
		t.Fatalf("got %q, want both cookies present", got)
	}
}

func TestHeaderValueForURLEmptyWhenNoCookies(t *testing.T) {
	jar, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	u, _ := url.Parse("http://example.com/")
	if _, ok := jar.HeaderValueForURL(u); ok {
		t.Fatal("expected no cookies for an untouched jar")
	}
}

func TestStoreCookiesForURLSkipsUnparsable(t *testing.T) {
	jar, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	u, _ := url.Parse("http://example.com/")
	jar.StoreCookiesForURL(u, []string{"", "good=1"})

	got, ok := jar.HeaderValueForURL(u)
	if !ok || !strings.Contains(got, "good=1") {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestCookiesScopedByDomain(t *testing.T) {
	jar, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	a, _ := url.Parse("http://a.example.com/")
	b, _ := url.Parse("http://b.example.com/")
	jar.StoreCookiesForURL(a, []string{"session=x"})

	if _, ok := jar.HeaderValueForURL(b); ok {
		t.Fatal("expected cookie set for a.example.com to not be visible on b.example.com")
	}
}
