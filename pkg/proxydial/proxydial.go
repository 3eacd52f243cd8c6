// Package proxydial adapts golang.org/x/net/proxy's SOCKS5 dialer to the
// engine's connect path, supplementing the core's http(s)-only proxy
// support for the ALL_PROXY=socks5://... case.
package proxydial

import (
	"context"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/proxy"

	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/proxypolicy"
)

// DialSOCKS5 connects to host:port through the given SOCKS5 proxy,
// honoring proxy credentials when present.
func DialSOCKS5(ctx context.Context, p *proxypolicy.ProxyURL, host string, port int, timeout time.Duration) (net.Conn, error) {
	var auth *proxy.Auth
	if p.HasAuth() {
		auth = &proxy.Auth{User: p.User, Password: p.Pass}
	}

	baseDialer := &net.Dialer{Timeout: timeout}
	proxyAddr := net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	dialer, err := proxy.SOCKS5("tcp", proxyAddr, auth, baseDialer)
	if err != nil {
		return nil, httperr.New(httperr.KindIO, "socks5_dial", "failed to build SOCKS5 dialer", err)
	}

	target := net.JoinHostPort(host, strconv.Itoa(port))

	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := dialer.Dial("tcp", target)
		ch <- result{c, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, httperr.New(httperr.KindIO, "socks5_dial", "SOCKS5 connect failed", r.err)
		}
		return r.conn, nil
	case <-ctx.Done():
		return nil, httperr.New(httperr.KindIO, "socks5_dial", "context canceled", ctx.Err())
	}
}
