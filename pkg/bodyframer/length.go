package bodyframer

import "io"

// LengthReader reads exactly the declared number of bytes from the
// underlying reader, then yields io.EOF, never reading past that point
// even if more data is available on the wire.
type LengthReader struct {
	r      io.Reader
	length uint64
	read   uint64
}

// NewLengthReader wraps r, bounding reads to length bytes total.
func NewLengthReader(r io.Reader, length uint64) *LengthReader {
	return &LengthReader{r: r, length: length}
}

func (l *LengthReader) Read(p []byte) (int, error) {
	if l.read >= l.length {
		return 0, io.EOF
	}
	remaining := l.length - l.read
	if uint64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := l.r.Read(p)
	l.read += uint64(n)
	return n, err
}
