package request

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/url"
)

// BodyKind tags a Body's framing strategy on the wire.
type BodyKind int

const (
	// BodyEmpty carries no bytes; no framing header is written.
	BodyEmpty BodyKind = iota
	// BodyKnownLength has a length available up front; Content-Length is written.
	BodyKnownLength
	// BodyChunked has no length available up front; Transfer-Encoding: chunked is used.
	BodyChunked
)

// Body is the capability set a request body must offer: declare its
// framing kind and stream itself to a writer. It deliberately avoids
// runtime type introspection; callers select behavior by Kind alone.
type Body interface {
	Kind() BodyKind
	// Len is only meaningful when Kind() == BodyKnownLength.
	Len() int64
	// ContentType is the value to default the Content-Type header to, or
	// "" if the body adaptor has no opinion.
	ContentType() string
	WriteTo(w io.Writer) error
}

type emptyBody struct{}

func (emptyBody) Kind() BodyKind       { return BodyEmpty }
func (emptyBody) Len() int64           { return 0 }
func (emptyBody) ContentType() string  { return "" }
func (emptyBody) WriteTo(io.Writer) error { return nil }

// EmptyBody is the body of a request with no payload.
var EmptyBody Body = emptyBody{}

type bytesBody struct {
	data        []byte
	contentType string
}

func (b *bytesBody) Kind() BodyKind      { return BodyKnownLength }
func (b *bytesBody) Len() int64          { return int64(len(b.data)) }
func (b *bytesBody) ContentType() string { return b.contentType }
func (b *bytesBody) WriteTo(w io.Writer) error {
	_, err := w.Write(b.data)
	return err
}

// BytesBody wraps a raw byte slice with no default Content-Type.
func BytesBody(data []byte) Body {
	return &bytesBody{data: data}
}

// TextBody wraps a UTF-8 string, defaulting Content-Type to
// text/plain; charset=utf-8.
func TextBody(text string) Body {
	return &bytesBody{data: []byte(text), contentType: "text/plain; charset=utf-8"}
}

// JSONBody marshals v and defaults Content-Type to application/json.
func JSONBody(v interface{}) (Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &bytesBody{data: data, contentType: "application/json"}, nil
}

// FormBody encodes values as application/x-www-form-urlencoded.
func FormBody(values url.Values) Body {
	return &bytesBody{data: []byte(values.Encode()), contentType: "application/x-www-form-urlencoded"}
}

// MultipartField is one field of a multipart/form-data body: either a
// plain value (FileName == "") or a file part.
type MultipartField struct {
	Name     string
	Value    string
	FileName string
	MimeType string
	Content  []byte
}

// MultipartBody builds a multipart/form-data body from fields, buffering
// the whole encoded form before returning (the resulting body therefore
// has a known length). A file field with an empty MimeType is sent as
// application/octet-stream.
func MultipartBody(fields []MultipartField) (Body, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.FileName == "" {
			if err := mw.WriteField(f.Name, f.Value); err != nil {
				return nil, err
			}
			continue
		}
		part, err := mw.CreatePart(multipartFileHeader(f))
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return &bytesBody{data: buf.Bytes(), contentType: mw.FormDataContentType()}, nil
}

type streamBody struct {
	r           io.Reader
	contentType string
}

func (s *streamBody) Kind() BodyKind      { return BodyChunked }
func (s *streamBody) Len() int64          { return -1 }
func (s *streamBody) ContentType() string { return s.contentType }
func (s *streamBody) WriteTo(w io.Writer) error {
	_, err := io.Copy(w, s.r)
	return err
}

// StreamBody wraps an arbitrary reader of unknown length; the request is
// sent with Transfer-Encoding: chunked.
func StreamBody(r io.Reader, contentType string) Body {
	return &streamBody{r: r, contentType: contentType}
}
