// Package settings defines BaseSettings, the configuration record shared
// by a session and every prepared request it mints.
package settings

import (
	"log"
	"time"

	"github.com/attohttpc/attohttpc-go/pkg/constants"
	"github.com/attohttpc/attohttpc-go/pkg/cookiejar"
	"github.com/attohttpc/attohttpc-go/pkg/headers"
	"github.com/attohttpc/attohttpc-go/pkg/proxypolicy"

	"golang.org/x/text/encoding"
)

// BaseSettings carries every option recognized at request-prepare and
// send time. A session owns one and hands a clone to each builder it
// mints; a builder mutates its own clone without affecting the session.
type BaseSettings struct {
	Headers *headers.Map

	MaxHeaders      int
	MaxRedirections int
	FollowRedirects bool

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	Timeout        time.Duration // 0 means no whole-request deadline

	Proxy *proxypolicy.Settings

	AcceptInvalidCerts     bool
	AcceptInvalidHostnames bool
	RootCertificatesPEM    [][]byte
	ClientCertPEM          []byte
	ClientKeyPEM           []byte
	TLSMinVersion          uint16
	TLSMaxVersion          uint16

	DefaultCharset   encoding.Encoding
	AllowCompression bool

	Jar cookiejar.Jar

	Logger *log.Logger
}

// Default returns a BaseSettings populated with spec-mandated defaults:
// 100 max headers, 5 max redirects, redirects followed, 30s connect and
// read timeouts, no whole-request timeout, compression announced, TLS
// left at the handshake wrapper's own secure default, no cookie jar.
func Default() *BaseSettings {
	return &BaseSettings{
		Headers:          headers.New(),
		MaxHeaders:       constants.DefaultMaxHeaders,
		MaxRedirections:  constants.DefaultMaxRedirections,
		FollowRedirects:  true,
		ConnectTimeout:   constants.DefaultConnectTimeout,
		ReadTimeout:      constants.DefaultReadTimeout,
		Proxy:            proxypolicy.FromEnv(log.Default()),
		AllowCompression: true,
		Logger:           log.Default(),
	}
}

// Clone returns a deep-enough copy: the header map and proxy settings
// are copied so that mutating the clone never affects the original, but
// the cookie jar and logger (shared collaborators, not per-request
// state) are carried by reference.
func (s *BaseSettings) Clone() *BaseSettings {
	c := *s
	c.Headers = s.Headers.Clone()
	if s.Proxy != nil {
		p := *s.Proxy
		p.NoProxyHosts = append([]string(nil), s.Proxy.NoProxyHosts...)
		c.Proxy = &p
	}
	c.RootCertificatesPEM = append([][]byte(nil), s.RootCertificatesPEM...)
	return &c
}
