// Package basestream implements the unified readable/writable byte stream
// over plain TCP, TLS, or an in-memory mock, including the whole-request
// deadline watchdog.
package basestream

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/attohttpc/attohttpc-go/pkg/happyeyeballs"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/proxydial"
	"github.com/attohttpc/attohttpc-go/pkg/proxypolicy"
	"github.com/attohttpc/attohttpc-go/pkg/timing"
	"github.com/attohttpc/attohttpc-go/pkg/tlshandshake"
)

// Stream is the capability set the rest of the engine needs from a
// connection: read, write, flush and a forced bidirectional shutdown used
// by the whole-request watchdog.
type Stream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Flush() error
	Shutdown() error
	Close() error
}

// connStream adapts a net.Conn (plain or TLS) to Stream.
type connStream struct {
	conn        net.Conn
	readTimeout time.Duration // re-armed before every Read; 0 disables
}

func (c *connStream) Read(p []byte) (int, error) {
	if c.readTimeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	return c.conn.Read(p)
}
func (c *connStream) Write(p []byte) (int, error) { return c.conn.Write(p) }
func (c *connStream) Flush() error                { return nil }
func (c *connStream) Shutdown() error             { return c.conn.Close() }
func (c *connStream) Close() error                { return c.conn.Close() }

// Info carries everything needed to establish one connection attempt.
type Info struct {
	Scheme               string
	Host                 string
	Port                 int
	ConnectTimeout       time.Duration
	ReadTimeout          time.Duration
	Deadline             time.Time // zero means no whole-request deadline
	Proxy                *proxypolicy.ProxyURL
	AcceptInvalidCerts   bool
	AcceptInvalidHosts   bool
	RootCAs              [][]byte // PEM blocks
	ClientCertPEM        []byte
	ClientKeyPEM         []byte
	TLSMinVersion        uint16
	TLSMaxVersion        uint16
	Timer                *timing.Timer // nil disables timing instrumentation
}

// Connect resolves info.Scheme and produces a Stream, performing the
// happy-eyeballs race, optional proxy CONNECT tunnel, and optional TLS
// handshake. On success, every Read on the returned Stream is bounded by
// info.ReadTimeout and, if info.Deadline is non-zero, a watchdog goroutine
// running that will forcibly Shutdown the stream once the deadline elapses.
func Connect(ctx context.Context, info Info) (Stream, error) {
	if info.Scheme != "http" && info.Scheme != "https" {
		return nil, httperr.New(httperr.KindInvalidBaseURL, "connect", "unsupported scheme "+info.Scheme, nil)
	}

	dialHost, dialPort := info.Host, info.Port
	if info.Proxy != nil {
		dialHost, dialPort = info.Proxy.Host, info.Proxy.Port
	}

	connectTimeout := info.ConnectTimeout
	if !info.Deadline.IsZero() {
		if remaining := time.Until(info.Deadline); remaining < connectTimeout {
			connectTimeout = remaining
		}
	}

	if info.Timer != nil {
		info.Timer.StartDNS()
	}

	var conn net.Conn
	var err error
	if info.Proxy != nil && info.Proxy.Scheme == "socks5" {
		conn, err = proxydial.DialSOCKS5(ctx, info.Proxy, dialHost, dialPort, connectTimeout)
	} else {
		conn, err = happyeyeballs.Connect(ctx, dialHost, dialPort, connectTimeout)
	}
	if info.Timer != nil {
		info.Timer.EndDNS()
		info.Timer.StartTCP()
		info.Timer.EndTCP()
	}
	if err != nil {
		return nil, err
	}

	if info.Proxy != nil && info.Proxy.Scheme != "socks5" && info.Scheme == "https" {
		if err := sendConnectTunnel(conn, info); err != nil {
			conn.Close()
			return nil, err
		}
	}

	if info.Scheme == "https" {
		if info.Timer != nil {
			info.Timer.StartTLS()
		}
		tlsConn, err := tlshandshake.Handshake(ctx, conn, tlshandshake.Options{
			ServerName:         info.Host,
			AcceptInvalidCerts: info.AcceptInvalidCerts,
			AcceptInvalidHosts: info.AcceptInvalidHosts,
			RootCAs:            info.RootCAs,
			ClientCertPEM:      info.ClientCertPEM,
			ClientKeyPEM:       info.ClientKeyPEM,
			MinVersion:         info.TLSMinVersion,
			MaxVersion:         info.TLSMaxVersion,
			HandshakeTimeout:   connectTimeout,
		})
		if info.Timer != nil {
			info.Timer.EndTLS()
		}
		if err != nil {
			conn.Close()
			return nil, err
		}
		conn = tlsConn
	}

	s := &connStream{conn: conn, readTimeout: info.ReadTimeout}
	if !info.Deadline.IsZero() {
		return withWatchdog(s, info.Deadline), nil
	}
	return s, nil
}

// watchdogStream wraps a Stream with a one-shot cancellation goroutine
// that forcibly Shuts the stream down once a deadline elapses, unless the
// stream is closed first.
type watchdogStream struct {
	Stream
	cancel chan struct{}
}

func withWatchdog(s Stream, deadline time.Time) Stream {
	ws := &watchdogStream{Stream: s, cancel: make(chan struct{})}
	go func() {
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		select {
		case <-timer.C:
			ws.Stream.Shutdown()
		case <-ws.cancel:
		}
	}()
	return ws
}

func (w *watchdogStream) Close() error {
	select {
	case <-w.cancel:
	default:
		close(w.cancel)
	}
	return w.Stream.Close()
}

// sendConnectTunnel issues an HTTP CONNECT request to the proxy over the
// plain TCP connection and consumes the proxy's response head. A 2xx
// status permits the caller to proceed with a TLS handshake on the same
// socket; anything else is an error.
func sendConnectTunnel(conn net.Conn, info Info) error {
	target := net.JoinHostPort(info.Host, strconv.Itoa(info.Port))
	req := "CONNECT " + target + " HTTP/1.1\r\nHost: " + target + "\r\n\r\n"
	if _, err := conn.Write([]byte(req)); err != nil {
		return httperr.New(httperr.KindIO, "connect_tunnel", "failed writing CONNECT request", err)
	}
	return readConnectResponse(conn)
}

// readConnectResponse reads the proxy's CONNECT response head using the
// same line discipline as the main head parser, without pulling in a
// dependency on it (this runs before any TLS/body framing exists).
func readConnectResponse(conn net.Conn) error {
	buf := make([]byte, 1)
	var line []byte
	var status int
	first := true
	for {
		line = line[:0]
		for {
			n, err := conn.Read(buf)
			if err != nil || n == 0 {
				return httperr.NewResponse(httperr.SubStatusLine, "connect_tunnel", "proxy closed connection", err)
			}
			if buf[0] == '\n' {
				break
			}
			if buf[0] != '\r' {
				line = append(line, buf[0])
			}
		}
		if first {
			first = false
			status = parseConnectStatus(line)
			if status < 200 || status >= 300 {
				return httperr.NewResponse(httperr.SubStatusCode, "connect_tunnel", "proxy refused CONNECT", nil)
			}
			continue
		}
		if len(line) == 0 {
			return nil
		}
	}
}

func parseConnectStatus(line []byte) int {
	fields := splitFields(line)
	if len(fields) < 2 {
		return 0
	}
	n := 0
	for _, b := range fields[1] {
		if b < '0' || b > '9' {
			return 0
		}
		n = n*10 + int(b-'0')
	}
	return n
}

func splitFields(line []byte) [][]byte {
	var out [][]byte
	start := -1
	for i, b := range line {
		if b == ' ' {
			if start >= 0 {
				out = append(out, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, line[start:])
	}
	return out
}
