package request

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/attohttpc/attohttpc-go/pkg/headers"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/settings"

	"golang.org/x/text/encoding"
)

// RequestBuilder accumulates query parameters, headers, a body and
// per-request settings before being prepared and sent. Methods return the
// builder itself so calls can be chained; a call that fails records the
// first error encountered and every later call becomes a no-op, mirroring
// the fail-fast chaining the underlying design expects.
type RequestBuilder struct {
	url      *url.URL
	method   Method
	headers  *headers.Map
	body     Body
	settings *settings.BaseSettings
	err      error
}

// New constructs a builder for method against baseURL using freshly
// defaulted settings. CONNECT is rejected immediately, matching the
// core's restriction that it is never a user-facing verb.
func New(method Method, baseURL string) *RequestBuilder {
	return WithSettings(method, baseURL, settings.Default())
}

// WithSettings constructs a builder sharing (a clone of) base, used by
// Session to mint per-verb builders bound to a settings template.
func WithSettings(method Method, baseURL string, base *settings.BaseSettings) *RequestBuilder {
	b := &RequestBuilder{method: method, body: EmptyBody, settings: base.Clone(), headers: headers.New()}
	if method == "CONNECT" {
		b.err = httperr.New(httperr.KindConnectNotSupported, "new_request", "CONNECT is not a user-facing method", nil)
		return b
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		b.err = httperr.New(httperr.KindInvalidBaseURL, "new_request", "invalid base url "+baseURL, err)
		return b
	}
	b.url = u
	return b
}

func (b *RequestBuilder) fail(err error) *RequestBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Param appends a single query string parameter. The same key may be
// used multiple times.
func (b *RequestBuilder) Param(key, value string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	q := b.url.Query()
	q.Add(key, value)
	b.url.RawQuery = q.Encode()
	return b
}

// Params appends every key/value pair as a query string parameter.
func (b *RequestBuilder) Params(pairs [][2]string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	q := b.url.Query()
	for _, kv := range pairs {
		q.Add(kv[0], kv[1])
	}
	b.url.RawQuery = q.Encode()
	return b
}

// Header sets name to value, replacing any prior value(s).
func (b *RequestBuilder) Header(name, value string) *RequestBuilder {
	return b.TryHeader(name, value)
}

// HeaderAppend adds value under name without discarding prior values.
func (b *RequestBuilder) HeaderAppend(name, value string) *RequestBuilder {
	return b.TryHeaderAppend(name, value)
}

// TryHeader is Header, validating name and value and recording an error
// instead of silently writing an invalid header.
func (b *RequestBuilder) TryHeader(name, value string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	if !headers.IsValidName(name) || !headers.IsValidValue([]byte(value)) {
		return b.fail(httperr.NewResponse(httperr.SubHeader, "header", "invalid header name or value", nil))
	}
	b.headers.Set(name, value)
	return b
}

// TryHeaderAppend is HeaderAppend with the same validation as TryHeader.
func (b *RequestBuilder) TryHeaderAppend(name, value string) *RequestBuilder {
	if b.err != nil {
		return b
	}
	if !headers.IsValidName(name) || !headers.IsValidValue([]byte(value)) {
		return b.fail(httperr.NewResponse(httperr.SubHeader, "header_append", "invalid header name or value", nil))
	}
	b.headers.Add(name, value)
	return b
}

// BearerAuth sets the Authorization header to "Bearer <token>".
func (b *RequestBuilder) BearerAuth(token string) *RequestBuilder {
	return b.Header("Authorization", "Bearer "+token)
}

// BasicAuth sets the Authorization header to HTTP basic auth credentials.
func (b *RequestBuilder) BasicAuth(username, password string) *RequestBuilder {
	raw := username + ":" + password
	return b.Header("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(raw)))
}

// Text sets a UTF-8 text body.
func (b *RequestBuilder) Text(text string) *RequestBuilder {
	return b.setBody(TextBody(text))
}

// Bytes sets a raw byte body with no default Content-Type.
func (b *RequestBuilder) Bytes(data []byte) *RequestBuilder {
	return b.setBody(BytesBody(data))
}

// JSON marshals v as the request body and sets Content-Type to
// application/json.
func (b *RequestBuilder) JSON(v interface{}) *RequestBuilder {
	if b.err != nil {
		return b
	}
	body, err := JSONBody(v)
	if err != nil {
		return b.fail(httperr.New(httperr.KindInvalidResponse, "json_body", "failed to marshal JSON body", err))
	}
	return b.setBody(body)
}

// Form encodes values as application/x-www-form-urlencoded.
func (b *RequestBuilder) Form(values url.Values) *RequestBuilder {
	return b.setBody(FormBody(values))
}

// Multipart builds a multipart/form-data body from fields. A file field
// with an unparsable MimeType fails with InvalidMimeType.
func (b *RequestBuilder) Multipart(fields []MultipartField) *RequestBuilder {
	if b.err != nil {
		return b
	}
	for _, f := range fields {
		if f.FileName != "" {
			if err := validateMimeType(f.MimeType); err != nil {
				return b.fail(httperr.New(httperr.KindInvalidMimeType, "multipart", fmt.Sprintf("bad mime type %q for field %q", f.MimeType, f.Name), err))
			}
		}
	}
	body, err := MultipartBody(fields)
	if err != nil {
		return b.fail(httperr.New(httperr.KindInvalidResponse, "multipart", "failed to encode multipart body", err))
	}
	return b.setBody(body)
}

// BodyStream sets an arbitrary reader of unknown length as the body; the
// request is sent chunked.
func (b *RequestBuilder) BodyStream(r io.Reader, contentType string) *RequestBuilder {
	return b.setBody(StreamBody(r, contentType))
}

func (b *RequestBuilder) setBody(body Body) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.body = body
	return b
}

// MaxRedirections caps the number of redirect hops followed.
func (b *RequestBuilder) MaxRedirections(n int) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.MaxRedirections = n
	return b
}

// FollowRedirects toggles whether redirect responses are followed.
func (b *RequestBuilder) FollowRedirects(follow bool) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.FollowRedirects = follow
	return b
}

// ConnectTimeout bounds a single connection attempt.
func (b *RequestBuilder) ConnectTimeout(d time.Duration) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.ConnectTimeout = d
	return b
}

// ReadTimeout bounds each individual socket read.
func (b *RequestBuilder) ReadTimeout(d time.Duration) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.ReadTimeout = d
	return b
}

// Timeout sets the whole-request wall-clock deadline. Zero means none.
func (b *RequestBuilder) Timeout(d time.Duration) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.Timeout = d
	return b
}

// DefaultCharset sets the fallback text encoding used when a response
// does not declare (or declares an unrecognized) charset.
func (b *RequestBuilder) DefaultCharset(enc encoding.Encoding) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.DefaultCharset = enc
	return b
}

// AllowCompression toggles whether Accept-Encoding: gzip, deflate is
// announced.
func (b *RequestBuilder) AllowCompression(allow bool) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.AllowCompression = allow
	return b
}

// DangerAcceptInvalidCerts disables TLS certificate validation entirely.
func (b *RequestBuilder) DangerAcceptInvalidCerts(accept bool) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.AcceptInvalidCerts = accept
	return b
}

// DangerAcceptInvalidHostnames tolerates a certificate/hostname mismatch
// while still validating the certificate chain itself.
func (b *RequestBuilder) DangerAcceptInvalidHostnames(accept bool) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.AcceptInvalidHostnames = accept
	return b
}

// RootCertificate adds an extra trust anchor in PEM form.
func (b *RequestBuilder) RootCertificate(pem []byte) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.RootCertificatesPEM = append(b.settings.RootCertificatesPEM, pem)
	return b
}

// ClientCertificate configures a client certificate for mutual TLS.
func (b *RequestBuilder) ClientCertificate(certPEM, keyPEM []byte) *RequestBuilder {
	if b.err != nil {
		return b
	}
	b.settings.ClientCertPEM = certPEM
	b.settings.ClientKeyPEM = keyPEM
	return b
}

// Prepare finalizes the accumulated state into a PreparedRequest, merging
// the builder's own headers atop the settings' default headers.
func (b *RequestBuilder) Prepare() (*PreparedRequest, error) {
	if b.err != nil {
		return nil, b.err
	}
	merged := b.settings.Headers.Clone()
	seen := make(map[string]bool)
	b.headers.Range(func(name, value string) {
		if seen[name] {
			merged.Add(name, value)
			return
		}
		seen[name] = true
		merged.Set(name, value)
	})
	return &PreparedRequest{
		URL:      b.url,
		Method:   b.method,
		Headers:  merged,
		Body:     b.body,
		Settings: b.settings,
	}, nil
}

// Send prepares the request, if needed, and drives it to completion,
// following redirects per the builder's settings.
func (b *RequestBuilder) Send() (*Response, error) {
	prepared, err := b.Prepare()
	if err != nil {
		return nil, err
	}
	return Send(prepared)
}
