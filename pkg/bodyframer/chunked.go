package bodyframer

import (
	"io"

	"github.com/attohttpc/attohttpc-go/pkg/constants"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/linebuf"
)

type chunkedState int

const (
	stateAwaitingHeader chunkedState = iota
	stateInChunk
	stateDone
)

// ChunkedReader decodes an HTTP/1.1 chunked transfer-coded body. It
// implements the AwaitingHeader / InChunk(remaining) / Done state machine:
// truncation mid-chunk surfaces as an UnexpectedEof-flavored error rather
// than a silent short read.
type ChunkedReader struct {
	lr        *linebuf.Reader
	state     chunkedState
	remaining uint64
}

// NewChunkedReader wraps r, which must not be read from except through
// this ChunkedReader once wrapping begins (a line-buffered reader may
// have consumed bytes ahead of the logical chunk boundary).
func NewChunkedReader(r io.Reader) *ChunkedReader {
	return &ChunkedReader{lr: linebuf.New(r), state: stateAwaitingHeader}
}

func (c *ChunkedReader) Read(p []byte) (int, error) {
	for {
		switch c.state {
		case stateDone:
			return 0, io.EOF

		case stateAwaitingHeader:
			line, err := c.lr.ReadLine(4096)
			if err != nil {
				return 0, err
			}
			size, perr := parseChunkSizeHex(line)
			if perr != nil {
				return 0, perr
			}
			if size == 0 {
				if _, err := c.lr.ReadLine(constants.MaxLineLength); err != nil {
					return 0, err
				}
				c.state = stateDone
				return 0, io.EOF
			}
			c.remaining = size
			c.state = stateInChunk

		case stateInChunk:
			if len(p) == 0 {
				return 0, nil
			}
			toRead := len(p)
			if uint64(toRead) > c.remaining {
				toRead = int(c.remaining)
			}
			n, err := c.lr.Read(p[:toRead])
			if n > 0 {
				c.remaining -= uint64(n)
				if c.remaining == 0 {
					if _, terr := c.lr.ReadLine(16); terr != nil {
						return n, terr
					}
					c.state = stateAwaitingHeader
				}
				return n, nil
			}
			if err != nil {
				return 0, wrapChunkReadErr(err)
			}
			return 0, nil
		}
	}
}

func wrapChunkReadErr(err error) error {
	if err == io.EOF {
		return httperr.New(httperr.KindIO, "chunked_body", "unexpected EOF reading chunk data", io.ErrUnexpectedEOF)
	}
	return httperr.New(httperr.KindIO, "chunked_body", "read failed", err)
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

// parseChunkSizeHex reads the leading run of hex digits from a chunk-size
// line, case-insensitively, and silently discards everything after the
// first non-hex-digit byte (this is where chunk-extensions such as
// ";ext=val" are skipped). An empty or non-hex leading run is an error.
func parseChunkSizeHex(line []byte) (uint64, error) {
	i := 0
	for i < len(line) && isHexDigit(line[i]) {
		i++
	}
	if i == 0 {
		return 0, httperr.New(httperr.KindIO, "chunked_size", "empty or invalid chunk size line", io.ErrUnexpectedEOF)
	}
	var n uint64
	for _, b := range line[:i] {
		n = n*16 + uint64(hexVal(b))
	}
	return n, nil
}
