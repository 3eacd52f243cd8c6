package headparser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/linebuf"
)

func TestParseSimpleResponse(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\n"
	r := linebuf.New(bytes.NewReader([]byte(raw)))
	code, hdrs, err := Parse(r, 100, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if code != 200 {
		t.Fatalf("got code %d, want 200", code)
	}
	if v, ok := hdrs.Get("Content-Type"); !ok || v != "text/plain" {
		t.Fatalf("got Content-Type %q, %v", v, ok)
	}
}

func TestParseStatusLineMissingCode(t *testing.T) {
	raw := "HTTP/1.1\r\n\r\n"
	r := linebuf.New(bytes.NewReader([]byte(raw)))
	_, _, err := Parse(r, 100, nil)
	if !errors.Is(err, &httperr.Error{Kind: httperr.KindInvalidResponse, Sub: httperr.SubStatusLine}) {
		t.Fatalf("got %v, want SubStatusLine error", err)
	}
}

func TestParseStatusLineNonNumericCode(t *testing.T) {
	raw := "HTTP/1.1 ABC OK\r\n\r\n"
	r := linebuf.New(bytes.NewReader([]byte(raw)))
	_, _, err := Parse(r, 100, nil)
	if !errors.Is(err, &httperr.Error{Kind: httperr.KindInvalidResponse, Sub: httperr.SubStatusCode}) {
		t.Fatalf("got %v, want SubStatusCode error", err)
	}
}

func TestParseTooManyHeaders(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nA: 1\r\nB: 2\r\nC: 3\r\n\r\n"
	r := linebuf.New(bytes.NewReader([]byte(raw)))
	_, _, err := Parse(r, 2, nil)
	if !errors.Is(err, &httperr.Error{Kind: httperr.KindInvalidResponse, Sub: httperr.SubHeader}) {
		t.Fatalf("got %v, want SubHeader too-many-headers error", err)
	}
}

func TestParseInvalidHeaderNameIsDroppedNotFatal(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nBad Name: value\r\nGood: ok\r\n\r\n"
	r := linebuf.New(bytes.NewReader([]byte(raw)))
	code, hdrs, err := Parse(r, 100, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if code != 200 {
		t.Fatalf("got %d", code)
	}
	if _, ok := hdrs.Get("Bad Name"); ok {
		t.Fatal("expected invalid header name to be dropped")
	}
	if v, ok := hdrs.Get("Good"); !ok || v != "ok" {
		t.Fatalf("got %q, %v", v, ok)
	}
}

func TestParseAcceptsBareLFHeaderLines(t *testing.T) {
	raw := "HTTP/1.1 200 OK\nContent-Type: text/plain\nContent-Length: 5\n\n"
	r := linebuf.New(bytes.NewReader([]byte(raw)))
	code, hdrs, err := Parse(r, 100, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if code != 200 {
		t.Fatalf("got %d", code)
	}
	if v, ok := hdrs.Get("Content-Type"); !ok || v != "text/plain" {
		t.Fatalf("got %q, %v", v, ok)
	}
}

func TestParseHeaderLineMissingColonFails(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nNotAHeader\r\n\r\n"
	r := linebuf.New(bytes.NewReader([]byte(raw)))
	_, _, err := Parse(r, 100, nil)
	if err == nil {
		t.Fatal("expected error for header line missing colon")
	}
}
