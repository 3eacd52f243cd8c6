// Package attohttpc provides a synchronous, client-side HTTP/1.1 library:
// a single-threaded, blocking-I/O engine that issues requests, speaks the
// wire protocol by hand, and delivers a structured response whose body
// may be streamed, decompressed, and character-decoded.
package attohttpc

import (
	"net/url"
	"time"

	"github.com/attohttpc/attohttpc-go/pkg/constants"
	"github.com/attohttpc/attohttpc-go/pkg/cookiejar"
	"github.com/attohttpc/attohttpc-go/pkg/request"
	"github.com/attohttpc/attohttpc-go/pkg/session"
	"github.com/attohttpc/attohttpc-go/pkg/settings"

	"golang.org/x/text/encoding"
)

// Version is the current version of this library, announced in the
// default User-Agent header.
const Version = constants.Version

// Re-export the core types so callers need only import this package for
// everyday use.
type (
	// RequestBuilder accumulates query parameters, headers, a body and
	// per-request settings before being prepared and sent.
	RequestBuilder = request.RequestBuilder

	// PreparedRequest is an immutable snapshot ready to be sent.
	PreparedRequest = request.PreparedRequest

	// Response is {status_code, headers, reader}.
	Response = request.Response

	// Body is the capability set a request body must offer.
	Body = request.Body

	// MultipartField is one field of a multipart/form-data body.
	MultipartField = request.MultipartField

	// Method is an HTTP request method.
	Method = request.Method

	// BaseSettings is the configuration record carried by a session and
	// every prepared request it mints.
	BaseSettings = settings.BaseSettings

	// Session carries a BaseSettings template over multiple requests.
	Session = session.Session

	// CookieJar is the pluggable cookie-storage capability.
	CookieJar = cookiejar.Jar
)

// Re-export the method constants.
const (
	MethodGet     = request.MethodGet
	MethodPost    = request.MethodPost
	MethodPut     = request.MethodPut
	MethodDelete  = request.MethodDelete
	MethodHead    = request.MethodHead
	MethodOptions = request.MethodOptions
	MethodPatch   = request.MethodPatch
	MethodTrace   = request.MethodTrace
)

// NewSession returns a Session with freshly defaulted settings.
func NewSession() *Session {
	return session.New()
}

// DefaultSettings returns a BaseSettings populated with the library's
// defaults (100 max headers, 5 max redirects, 30s connect/read timeouts,
// redirects followed, compression announced, no whole-request timeout).
func DefaultSettings() *BaseSettings {
	return settings.Default()
}

// NewCookieJar returns a CookieJar backed by the standard library's
// cookie store, with no public suffix list configured.
func NewCookieJar() (CookieJar, error) {
	return cookiejar.NewDefault()
}

// Get returns a builder for a GET request to baseURL.
func Get(baseURL string) *RequestBuilder { return request.New(request.MethodGet, baseURL) }

// Post returns a builder for a POST request to baseURL.
func Post(baseURL string) *RequestBuilder { return request.New(request.MethodPost, baseURL) }

// Put returns a builder for a PUT request to baseURL.
func Put(baseURL string) *RequestBuilder { return request.New(request.MethodPut, baseURL) }

// Delete returns a builder for a DELETE request to baseURL.
func Delete(baseURL string) *RequestBuilder { return request.New(request.MethodDelete, baseURL) }

// Head returns a builder for a HEAD request to baseURL.
func Head(baseURL string) *RequestBuilder { return request.New(request.MethodHead, baseURL) }

// Options returns a builder for an OPTIONS request to baseURL.
func Options(baseURL string) *RequestBuilder { return request.New(request.MethodOptions, baseURL) }

// Patch returns a builder for a PATCH request to baseURL.
func Patch(baseURL string) *RequestBuilder { return request.New(request.MethodPatch, baseURL) }

// Trace returns a builder for a TRACE request to baseURL.
func Trace(baseURL string) *RequestBuilder { return request.New(request.MethodTrace, baseURL) }

// RequestMethod returns a builder for an arbitrary method to baseURL.
// CONNECT is rejected: it is never a user-facing verb.
func RequestMethod(method Method, baseURL string) *RequestBuilder {
	return request.New(method, baseURL)
}

// Send sends an already prepared request, following redirects per its
// settings.
func Send(req *PreparedRequest) (*Response, error) {
	return request.Send(req)
}

// IsTimeout reports whether err represents a timeout at any layer of the
// engine (connect, read, or the whole-request watchdog).
func IsTimeout(err error) bool {
	return request.IsTimeoutError(err)
}

// ParseURL parses and validates raw the same way a builder would,
// returning InvalidBaseUrl on failure.
func ParseURL(raw string) (*url.URL, error) {
	return request.ParseBaseURL(raw)
}

// DefaultCharsetOf returns the caller-supplied fallback encoding stored in
// settings, used when a response's Content-Type names no recognized
// charset. It is nil unless set; responses then fall back to Windows-1252.
func DefaultCharsetOf(settings *BaseSettings) encoding.Encoding {
	return settings.DefaultCharset
}

// DefaultConnectTimeout and DefaultReadTimeout mirror the timeouts that
// DefaultSettings fills in, exposed for callers that build a BaseSettings
// by hand instead of through DefaultSettings (a zero-value BaseSettings
// has no connect or read timeout).
const (
	DefaultConnectTimeout = 30 * time.Second
	DefaultReadTimeout    = 30 * time.Second
)
