// Package happyeyeballs implements the dual-stack connection race: DNS
// resolution producing an IPv6-then-IPv4 interleaved address list, a
// staggered-dispatch connect race across that list, and first-success-wins
// semantics. Grounded on the reference implementation's connect(host,
// port, timeout, deadline) algorithm.
package happyeyeballs

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/attohttpc/attohttpc-go/pkg/constants"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
)

type dialResult struct {
	conn net.Conn
	err  error
}

// Connect resolves host and races a TCP connect across its addresses,
// interleaving IPv6 and IPv4 (A, B, A, B, ...). If DNS yields a single
// address, the race is skipped. timeout bounds each individual connect
// attempt.
func Connect(ctx context.Context, host string, port int, timeout time.Duration) (net.Conn, error) {
	addrs, err := resolveAndInterleave(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, noDNSEntries()
	}
	if len(addrs) == 1 {
		return dialOne(ctx, addrs[0], port, timeout)
	}

	results := make(chan dialResult, len(addrs))
	dispatch := func(addr net.IP) {
		go func() {
			conn, err := dialOne(ctx, addr, port, timeout)
			results <- dialResult{conn, err}
		}()
	}

	var firstErr error
	consumed := 0

	for i, addr := range addrs {
		dispatch(addr)
		if i == len(addrs)-1 {
			break
		}
		select {
		case r := <-results:
			consumed++
			if r.err == nil {
				go drainRest(results, len(addrs)-consumed)
				return r.conn, nil
			}
			if firstErr == nil {
				firstErr = r.err
			}
		case <-time.After(constants.RaceDelay):
		}
	}

	for consumed < len(addrs) {
		r := <-results
		consumed++
		if r.err == nil {
			go drainRest(results, len(addrs)-consumed)
			return r.conn, nil
		}
		if firstErr == nil {
			firstErr = r.err
		}
	}

	if firstErr == nil {
		firstErr = noDNSEntries()
	}
	return nil, firstErr
}

func drainRest(results <-chan dialResult, n int) {
	for i := 0; i < n; i++ {
		r := <-results
		if r.conn != nil {
			r.conn.Close()
		}
	}
}

func dialOne(ctx context.Context, addr net.IP, port int, timeout time.Duration) (net.Conn, error) {
	d := &net.Dialer{Timeout: timeout}
	target := net.JoinHostPort(addr.String(), strconv.Itoa(port))
	conn, err := d.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, httperr.New(httperr.KindIO, "dial", "connect failed to "+target, err)
	}
	return conn, nil
}

func noDNSEntries() error {
	return httperr.New(httperr.KindIO, "happy_eyeballs", "no DNS entries found", nil)
}

// resolveAndInterleave resolves host via the system resolver (skipping
// resolution entirely for an IP literal) and interleaves the resulting
// addresses IPv6-first, IPv4-second.
func resolveAndInterleave(ctx context.Context, host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}
	ipAddrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, httperr.New(httperr.KindIO, "dns_lookup", "DNS lookup failed for "+host, err)
	}
	var v6, v4 []net.IP
	for _, a := range ipAddrs {
		if a.IP.To4() != nil {
			v4 = append(v4, a.IP)
		} else {
			v6 = append(v6, a.IP)
		}
	}
	return intertwine(v6, v4), nil
}

// intertwine interleaves a and b as A, B, A, B, ... until both are
// exhausted, tolerating unequal lengths.
func intertwine(a, b []net.IP) []net.IP {
	out := make([]net.IP, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}
