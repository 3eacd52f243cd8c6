// Package linebuf implements framed reading of CRLF-terminated lines over
// an arbitrary byte source, with a configurable per-line size cap.
package linebuf

import (
	"bufio"
	"io"

	"github.com/attohttpc/attohttpc-go/pkg/httperr"
)

// Reader wraps a bufio.Reader to provide line-oriented reads with a
// maximum length and a strict bare-LF-rejecting mode.
type Reader struct {
	r *bufio.Reader
}

// New wraps r. If r is already a *bufio.Reader it is reused.
func New(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// Read forwards to the underlying buffered reader, preserving whatever
// bytes it has already buffered from prior ReadLine calls. Callers that
// mix line-oriented and raw reads (the chunked body framer) must do so
// through a single Reader instance.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

func unexpectedEOF(op string) error {
	return httperr.New(httperr.KindIO, op, "unexpected EOF while reading line", io.ErrUnexpectedEOF)
}

// ReadLine reads one line up to maxLen bytes, accepting either "\r\n" or a
// bare "\n" as terminator, and returns the line without its terminator.
// If maxLen bytes are consumed without finding a terminator, it fails
// with an UnexpectedEof-flavored error.
func (r *Reader) ReadLine(maxLen int) ([]byte, error) {
	return r.readLine(maxLen, false)
}

// ReadLineStrict behaves like ReadLine but additionally rejects a bare LF
// not preceded by CR.
func (r *Reader) ReadLineStrict(maxLen int) ([]byte, error) {
	return r.readLine(maxLen, true)
}

func (r *Reader) readLine(maxLen int, strict bool) ([]byte, error) {
	var line []byte
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, unexpectedEOF("read_line")
			}
			return nil, httperr.New(httperr.KindIO, "read_line", "read failed", err)
		}
		if b == '\n' {
			if len(line) > 0 && line[len(line)-1] == '\r' {
				return line[:len(line)-1], nil
			}
			if strict {
				return nil, httperr.NewResponse(httperr.SubHeader, "read_line_strict", "bare LF not permitted", nil)
			}
			return line, nil
		}
		line = append(line, b)
		if len(line) >= maxLen {
			return nil, unexpectedEOF("read_line")
		}
	}
}

// TrimByteLeft returns buf with leading occurrences of b removed.
func TrimByteLeft(b byte, buf []byte) []byte {
	i := 0
	for i < len(buf) && buf[i] == b {
		i++
	}
	return buf[i:]
}

// TrimByteRight returns buf with trailing occurrences of b removed.
func TrimByteRight(b byte, buf []byte) []byte {
	j := len(buf)
	for j > 0 && buf[j-1] == b {
		j--
	}
	return buf[:j]
}

// TrimByte trims b from both ends of buf.
func TrimByte(b byte, buf []byte) []byte {
	return TrimByteLeft(b, TrimByteRight(b, buf))
}

// ReplaceByte replaces every occurrence of old with replacement in buf, in place.
func ReplaceByte(old, replacement byte, buf []byte) {
	for i, c := range buf {
		if c == old {
			buf[i] = replacement
		}
	}
}
