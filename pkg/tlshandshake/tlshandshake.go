// Package tlshandshake upgrades a plain byte stream to an authenticated
// TLS stream, with the policy knobs the engine exposes: accept-invalid-
// certs, accept-invalid-hostnames, extra root CAs, client certificates,
// and version/SNI control.
package tlshandshake

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"time"

	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/tlsprofile"
)

// Options configures a single handshake attempt.
type Options struct {
	ServerName         string
	AcceptInvalidCerts bool // disables certificate validation entirely
	AcceptInvalidHosts bool // tolerates SAN/CN mismatch only
	RootCAs            [][]byte
	ClientCertPEM      []byte
	ClientKeyPEM       []byte
	MinVersion         uint16
	MaxVersion         uint16
	HandshakeTimeout   time.Duration
}

// verifyHostnameSkipped is a custom VerifyPeerCertificate used when only
// the hostname check (not the whole chain) should be skipped: it parses
// and validates the chain against the configured roots, without the
// hostname comparison that crypto/tls would otherwise perform.
func verifyHostnameSkipped(roots *x509.CertPool) func([][]byte, [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return httperr.New(httperr.KindTLS, "verify", "no certificates presented", nil)
		}
		certs := make([]*x509.Certificate, len(rawCerts))
		for i, raw := range rawCerts {
			cert, err := x509.ParseCertificate(raw)
			if err != nil {
				return httperr.New(httperr.KindTLS, "verify", "invalid certificate", err)
			}
			certs[i] = cert
		}
		intermediates := x509.NewCertPool()
		for _, c := range certs[1:] {
			intermediates.AddCert(c)
		}
		opts := x509.VerifyOptions{Roots: roots, Intermediates: intermediates}
		_, err := certs[0].Verify(opts)
		if err != nil {
			return httperr.New(httperr.KindTLS, "verify", "certificate verification failed", err)
		}
		return nil
	}
}

// Handshake upgrades conn to TLS against opts.ServerName, applying the
// given policy knobs, as one blocking handshake bounded by ctx and
// opts.HandshakeTimeout (30s when unset). Any failure is a KindTLS error.
func Handshake(ctx context.Context, conn net.Conn, opts Options) (net.Conn, error) {
	cfg := &tls.Config{ServerName: opts.ServerName}

	minV, maxV := opts.MinVersion, opts.MaxVersion
	if minV == 0 && maxV == 0 {
		tlsprofile.Apply(cfg, tlsprofile.Secure)
	} else {
		if minV != 0 {
			cfg.MinVersion = minV
		}
		if maxV != 0 {
			cfg.MaxVersion = maxV
		}
	}

	if len(opts.RootCAs) > 0 {
		pool := x509.NewCertPool()
		for _, pem := range opts.RootCAs {
			pool.AppendCertsFromPEM(pem)
		}
		cfg.RootCAs = pool
	}

	if opts.AcceptInvalidCerts {
		cfg.InsecureSkipVerify = true
	} else if opts.AcceptInvalidHosts {
		cfg.InsecureSkipVerify = true
		roots := cfg.RootCAs
		if roots == nil {
			var err error
			roots, err = x509.SystemCertPool()
			if err != nil || roots == nil {
				roots = x509.NewCertPool()
			}
		}
		cfg.VerifyPeerCertificate = verifyHostnameSkipped(roots)
	}

	if len(opts.ClientCertPEM) > 0 && len(opts.ClientKeyPEM) > 0 {
		cert, err := tls.X509KeyPair(opts.ClientCertPEM, opts.ClientKeyPEM)
		if err != nil {
			return nil, httperr.New(httperr.KindTLS, "client_cert", "failed to load client certificate", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	timeout := opts.HandshakeTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.HandshakeContext(hctx); err != nil {
		return nil, httperr.New(httperr.KindTLS, "handshake", "TLS handshake failed for "+opts.ServerName, err)
	}
	return tlsConn, nil
}
