// Package request implements the prepared-request lifecycle: accumulate
// settings, headers and body on a builder; serialize the wire form; drive
// connect/write/parse/redirect.
package request

import (
	"net/url"

	"github.com/attohttpc/attohttpc-go/pkg/headers"
	"github.com/attohttpc/attohttpc-go/pkg/settings"
)

// Method is an HTTP request method. CONNECT is rejected as a user-level
// method; it is only synthesized internally for HTTPS-through-proxy.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodPatch   Method = "PATCH"
	MethodTrace   Method = "TRACE"
)

// PreparedRequest is an immutable snapshot of method, URL, headers, body
// and settings, ready to be sent and re-sent (with a new URL) across
// redirect hops.
type PreparedRequest struct {
	URL      *url.URL
	Method   Method
	Headers  *headers.Map
	Body     Body
	Settings *settings.BaseSettings
}
