// Package session implements Session, a reusable settings template that
// mints per-verb request builders. A session owns no connection state.
package session

import (
	"time"

	"github.com/attohttpc/attohttpc-go/pkg/cookiejar"
	"github.com/attohttpc/attohttpc-go/pkg/request"
	"github.com/attohttpc/attohttpc-go/pkg/settings"

	"golang.org/x/text/encoding"
)

// Session carries a BaseSettings template; mutations affect only builders
// minted after the mutation.
type Session struct {
	base *settings.BaseSettings
}

// New returns a Session with freshly defaulted settings.
func New() *Session {
	return &Session{base: settings.Default()}
}

func (s *Session) builder(method request.Method, baseURL string) *request.RequestBuilder {
	return request.WithSettings(method, baseURL, s.base)
}

func (s *Session) Get(baseURL string) *request.RequestBuilder     { return s.builder(request.MethodGet, baseURL) }
func (s *Session) Post(baseURL string) *request.RequestBuilder    { return s.builder(request.MethodPost, baseURL) }
func (s *Session) Put(baseURL string) *request.RequestBuilder     { return s.builder(request.MethodPut, baseURL) }
func (s *Session) Delete(baseURL string) *request.RequestBuilder  { return s.builder(request.MethodDelete, baseURL) }
func (s *Session) Head(baseURL string) *request.RequestBuilder    { return s.builder(request.MethodHead, baseURL) }
func (s *Session) Options(baseURL string) *request.RequestBuilder { return s.builder(request.MethodOptions, baseURL) }
func (s *Session) Patch(baseURL string) *request.RequestBuilder   { return s.builder(request.MethodPatch, baseURL) }
func (s *Session) Trace(baseURL string) *request.RequestBuilder   { return s.builder(request.MethodTrace, baseURL) }

// Header sets a default header sent with every request minted after this call.
func (s *Session) Header(name, value string) { s.base.Headers.Set(name, value) }

// HeaderAppend appends a default header value.
func (s *Session) HeaderAppend(name, value string) { s.base.Headers.Add(name, value) }

// MaxHeaders sets the response header-count cap.
func (s *Session) MaxHeaders(n int) { s.base.MaxHeaders = n }

// MaxRedirections sets the redirect hop cap.
func (s *Session) MaxRedirections(n int) { s.base.MaxRedirections = n }

// FollowRedirects toggles whether redirect responses are followed.
func (s *Session) FollowRedirects(follow bool) { s.base.FollowRedirects = follow }

// ConnectTimeout sets the per-connection attempt cap.
func (s *Session) ConnectTimeout(d time.Duration) { s.base.ConnectTimeout = d }

// ReadTimeout sets the per-socket-read cap.
func (s *Session) ReadTimeout(d time.Duration) { s.base.ReadTimeout = d }

// Timeout sets the whole-request wall-clock cap; zero means none.
func (s *Session) Timeout(d time.Duration) { s.base.Timeout = d }

// DefaultCharset sets the fallback text encoding for responses that
// don't declare (or declare an unrecognized) charset.
func (s *Session) DefaultCharset(enc encoding.Encoding) { s.base.DefaultCharset = enc }

// AllowCompression toggles whether Accept-Encoding: gzip, deflate is announced.
func (s *Session) AllowCompression(allow bool) { s.base.AllowCompression = allow }

// DangerAcceptInvalidCerts disables TLS certificate validation entirely.
func (s *Session) DangerAcceptInvalidCerts(accept bool) { s.base.AcceptInvalidCerts = accept }

// DangerAcceptInvalidHostnames tolerates a certificate/hostname mismatch.
func (s *Session) DangerAcceptInvalidHostnames(accept bool) { s.base.AcceptInvalidHostnames = accept }

// AddRootCertificate adds an extra trust anchor in PEM form.
func (s *Session) AddRootCertificate(pem []byte) {
	s.base.RootCertificatesPEM = append(s.base.RootCertificatesPEM, pem)
}

// SetCookieJar attaches a cookie jar; nil disables cookie handling.
func (s *Session) SetCookieJar(jar cookiejar.Jar) { s.base.Jar = jar }
