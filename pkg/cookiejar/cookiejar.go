// Package cookiejar defines the pluggable cookie-jar capability consumed
// by the request builder as a black box, plus a default implementation
// backed by the standard library's cookie jar.
package cookiejar

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	stdjar "net/http/cookiejar"
)

// Jar is the capability the core consumes: produce the Cookie header
// value (if any) to send for a URL, and record the Set-Cookie values
// seen in a response from that URL. Implementations are responsible for
// their own invariants, expiry, and internal serialization.
type Jar interface {
	HeaderValueForURL(u *url.URL) (string, bool)
	StoreCookiesForURL(u *url.URL, setCookieValues []string)
}

// defaultJar adapts net/http/cookiejar.Jar, the ecosystem-standard
// cookie store, behind the Jar interface. All access
// is serialized, since it is the one piece of shared mutable state a
// session's builders may hold concurrently.
type defaultJar struct {
	mu    sync.Mutex
	inner *stdjar.Jar
}

// NewDefault returns a Jar backed by net/http/cookiejar with the public
// suffix list disabled (nil options), matching the simplest common usage.
func NewDefault() (Jar, error) {
	j, err := stdjar.New(nil)
	if err != nil {
		return nil, err
	}
	return &defaultJar{inner: j}, nil
}

func (d *defaultJar) HeaderValueForURL(u *url.URL) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cookies := d.inner.Cookies(u)
	if len(cookies) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; "), true
}

func (d *defaultJar) StoreCookiesForURL(u *url.URL, setCookieValues []string) {
	if len(setCookieValues) == 0 {
		return
	}
	cookies := make([]*http.Cookie, 0, len(setCookieValues))
	for _, v := range setCookieValues {
		c, err := http.ParseSetCookie(v)
		if err != nil {
			continue
		}
		cookies = append(cookies, c)
	}
	if len(cookies) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.inner.SetCookies(u, cookies)
}
