package request

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
)

func TestEmptyBodyWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := EmptyBody.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.Len() != 0 || EmptyBody.Kind() != BodyEmpty {
		t.Fatalf("got len=%d kind=%v", buf.Len(), EmptyBody.Kind())
	}
}

func TestTextBodySetsCharsetContentType(t *testing.T) {
	b := TextBody("hello")
	if b.Kind() != BodyKnownLength || b.Len() != 5 {
		t.Fatalf("got kind=%v len=%d", b.Kind(), b.Len())
	}
	if b.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("got %q", b.ContentType())
	}
	var buf bytes.Buffer
	b.WriteTo(&buf)
	if buf.String() != "hello" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestJSONBodyMarshalsAndSetsContentType(t *testing.T) {
	b, err := JSONBody(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("JSONBody: %v", err)
	}
	if b.ContentType() != "application/json" {
		t.Fatalf("got %q", b.ContentType())
	}
	var buf bytes.Buffer
	b.WriteTo(&buf)
	if buf.String() != `{"a":1}` {
		t.Fatalf("got %q", buf.String())
	}
}

func TestFormBodyEncodesValues(t *testing.T) {
	v := url.Values{}
	v.Set("a", "1 2")
	b := FormBody(v)
	if b.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("got %q", b.ContentType())
	}
	var buf bytes.Buffer
	b.WriteTo(&buf)
	if buf.String() != "a=1+2" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestMultipartBodyEncodesFieldsAndFiles(t *testing.T) {
	b, err := MultipartBody([]MultipartField{
		{Name: "title", Value: "hello"},
		{Name: "file", FileName: "a.txt", MimeType: "text/plain", Content: []byte("contents")},
	})
	if err != nil {
		t.Fatalf("MultipartBody: %v", err)
	}
	if !strings.HasPrefix(b.ContentType(), "multipart/form-data; boundary=") {
		t.Fatalf("got %q", b.ContentType())
	}
	var buf bytes.Buffer
	b.WriteTo(&buf)
	out := buf.String()
	if !strings.Contains(out, `name="title"`) || !strings.Contains(out, "hello") {
		t.Fatalf("missing title field in %q", out)
	}
	if !strings.Contains(out, `filename="a.txt"`) || !strings.Contains(out, "contents") {
		t.Fatalf("missing file part in %q", out)
	}
}

func TestStreamBodyIsChunkedWithUnknownLength(t *testing.T) {
	b := StreamBody(strings.NewReader("abc"), "application/octet-stream")
	if b.Kind() != BodyChunked || b.Len() != -1 {
		t.Fatalf("got kind=%v len=%d", b.Kind(), b.Len())
	}
	var buf bytes.Buffer
	if err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != "abc" {
		t.Fatalf("got %q", buf.String())
	}
}
