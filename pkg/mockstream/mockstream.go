// Package mockstream provides an in-memory basestream.Stream double for
// tests, grounded on the original implementation's BaseStream::mock.
package mockstream

import "bytes"

// Stream is a fixed in-memory byte source that also satisfies
// basestream.Stream, so parser/framer/redirect tests never open a real
// socket.
type Stream struct {
	r      *bytes.Reader
	Out    bytes.Buffer
	closed bool
}

// New returns a Stream that yields data on Read and records writes in Out.
func New(data []byte) *Stream {
	return &Stream{r: bytes.NewReader(data)}
}

func (s *Stream) Read(p []byte) (int, error)  { return s.r.Read(p) }
func (s *Stream) Write(p []byte) (int, error) { return s.Out.Write(p) }
func (s *Stream) Flush() error                { return nil }
func (s *Stream) Shutdown() error             { s.closed = true; return nil }
func (s *Stream) Close() error                { s.closed = true; return nil }
func (s *Stream) Closed() bool                { return s.closed }
