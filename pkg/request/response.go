package request

import (
	"encoding/json"
	"io"

	"github.com/attohttpc/attohttpc-go/pkg/basestream"
	"github.com/attohttpc/attohttpc-go/pkg/headers"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/textdecode"
	"github.com/attohttpc/attohttpc-go/pkg/timing"

	"golang.org/x/text/encoding"
)

// Response is {status_code, headers, reader}: reader owns the chain of
// body framer -> decompressor -> (optional) text decoder atop the base
// stream. It is consumed exactly once. Bytes, Text, TextWith, TextUTF8,
// JSON and WriteTo close the stream when done; Read does not, and Split
// hands closing to the caller.
type Response struct {
	StatusCode int
	Headers    *headers.Map

	// Metrics is a per-hop snapshot of DNS/TCP/TLS/TTFB timings, or nil
	// if the request was built without a timer (e.g. tests driving
	// buildResponse directly against a mock stream).
	Metrics *timing.Metrics

	stream         basestream.Stream
	rawBody        io.Reader
	defaultCharset encoding.Encoding
	consumed       bool
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorForStatus returns a KindStatusCode error if the response is not a
// success, nil otherwise.
func (r *Response) ErrorForStatus() error {
	if r.IsSuccess() {
		return nil
	}
	return httperr.NewStatusCode(r.StatusCode)
}

// Read implements io.Reader over the reader stack directly, for callers
// that want to stream the body without buffering it.
func (r *Response) Read(p []byte) (int, error) {
	r.consumed = true
	return r.rawBody.Read(p)
}

// Split returns the status code, headers and raw body reader separately,
// handing ownership of the underlying stream to the caller (Close must
// be called once the reader is drained).
func (r *Response) Split() (int, *headers.Map, io.ReadCloser) {
	r.consumed = true
	return r.StatusCode, r.Headers, &responseBody{r: r.rawBody, closer: r.stream}
}

type responseBody struct {
	r      io.Reader
	closer basestream.Stream
}

func (b *responseBody) Read(p []byte) (int, error) { return b.r.Read(p) }
func (b *responseBody) Close() error                { return b.closer.Close() }

// Bytes reads the entire body into memory.
func (r *Response) Bytes() ([]byte, error) {
	defer r.stream.Close()
	r.consumed = true
	return io.ReadAll(r.rawBody)
}

// Text reads the entire body and decodes it using the charset named by
// the response's Content-Type, falling back to the request's configured
// default charset, falling back to Windows-1252.
func (r *Response) Text() (string, error) {
	return r.TextWith(r.defaultCharset)
}

// TextWith is Text, using def as the fallback charset instead of the one
// configured on the originating request.
func (r *Response) TextWith(def encoding.Encoding) (string, error) {
	defer r.stream.Close()
	r.consumed = true
	decoded := textdecode.NewReader(r.Headers, def, r.rawBody)
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", httperr.New(httperr.KindIO, "text", "failed reading response body", err)
	}
	return string(data), nil
}

// TextUTF8 decodes the body assuming UTF-8 regardless of Content-Type,
// for callers that already know the server's encoding.
func (r *Response) TextUTF8() (string, error) {
	defer r.stream.Close()
	r.consumed = true
	data, err := io.ReadAll(r.rawBody)
	if err != nil {
		return "", httperr.New(httperr.KindIO, "text_utf8", "failed reading response body", err)
	}
	return string(data), nil
}

// JSON reads the entire body and unmarshals it into v.
func (r *Response) JSON(v interface{}) error {
	defer r.stream.Close()
	r.consumed = true
	data, err := io.ReadAll(r.rawBody)
	if err != nil {
		return httperr.New(httperr.KindIO, "json", "failed reading response body", err)
	}
	return json.Unmarshal(data, v)
}

// WriteTo streams the body to w and closes the underlying stream.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	defer r.stream.Close()
	r.consumed = true
	return io.Copy(w, r.rawBody)
}

// discardBody drains and closes the stream ahead of a redirect hop, per
// invariant 2: the previous response's body is fully discarded and the
// connection is not reused.
func (r *Response) discardBody() {
	if !r.consumed {
		io.Copy(io.Discard, r.rawBody)
	}
	r.stream.Close()
}
