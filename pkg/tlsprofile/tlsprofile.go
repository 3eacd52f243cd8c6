// Package tlsprofile provides named TLS version/cipher-suite profiles and
// the helpers used to apply them to a crypto/tls.Config.
package tlsprofile

import "crypto/tls"

// TLS protocol version identifiers, re-exported for convenience.
const (
	VersionTLS10 uint16 = tls.VersionTLS10
	VersionTLS11 uint16 = tls.VersionTLS11
	VersionTLS12 uint16 = tls.VersionTLS12
	VersionTLS13 uint16 = tls.VersionTLS13
)

// Profile is a named minimum/maximum TLS version pair.
type Profile struct {
	Min         uint16
	Max         uint16
	Description string
}

var (
	// Modern restricts the handshake to TLS 1.3 only.
	Modern = Profile{Min: VersionTLS13, Max: VersionTLS13, Description: "TLS 1.3 only"}
	// Secure allows TLS 1.2 and 1.3. This is the library default.
	Secure = Profile{Min: VersionTLS12, Max: VersionTLS13, Description: "TLS 1.2+"}
	// Compatible allows TLS 1.0 through 1.3, for legacy servers.
	Compatible = Profile{Min: VersionTLS10, Max: VersionTLS13, Description: "TLS 1.0+"}
)

// GetVersionName returns a human-readable name for a TLS version constant.
func GetVersionName(version uint16) string {
	switch version {
	case VersionTLS10:
		return "TLS 1.0"
	case VersionTLS11:
		return "TLS 1.1"
	case VersionTLS12:
		return "TLS 1.2"
	case VersionTLS13:
		return "TLS 1.3"
	default:
		return "Unknown"
	}
}

// Secure cipher suites for TLS 1.2 (AEAD only: AES-GCM and
// ChaCha20-Poly1305, no CBC), applied whenever a profile's minimum
// version is below TLS 1.3.
var CipherSuitesTLS12Secure = []uint16{
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
	tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
}

// Apply sets config's MinVersion/MaxVersion from the profile, and picks a
// cipher suite list appropriate for the minimum version. TLS 1.3 manages
// its own suites, so CipherSuites is left nil in that case.
func Apply(config *tls.Config, profile Profile) {
	config.MinVersion = profile.Min
	config.MaxVersion = profile.Max
	if profile.Min >= VersionTLS13 {
		config.CipherSuites = nil
	} else {
		config.CipherSuites = CipherSuitesTLS12Secure
	}
}
