// Package proxypolicy resolves which proxy, if any, applies to a given
// request URL, from either programmatic settings or the conventional
// HTTP_PROXY/HTTPS_PROXY/ALL_PROXY/NO_PROXY environment variables.
package proxypolicy

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ProxyURL is a parsed, scheme-validated proxy endpoint.
type ProxyURL struct {
	Scheme string // "http", "https", or "socks5"
	Host   string
	Port   int
	User   string
	Pass   string
	hasAuth bool
}

func (p *ProxyURL) HasAuth() bool { return p.hasAuth }

// ParseProxyURL parses raw as an absolute proxy URL. Recognized schemes
// are http, https and socks5 (the latter supplementing the core's
// http(s)-only proxy support, see SPEC_FULL.md §4.5).
func ParseProxyURL(raw string) (*ProxyURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" && scheme != "socks5" {
		return nil, &url.Error{Op: "parse", URL: raw, Err: strError("unsupported proxy scheme")}
	}
	host := u.Hostname()
	if host == "" {
		return nil, &url.Error{Op: "parse", URL: raw, Err: strError("missing proxy host")}
	}
	port := 0
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, &url.Error{Op: "parse", URL: raw, Err: strError("invalid proxy port")}
		}
	} else {
		switch scheme {
		case "http":
			port = 80
		case "https":
			port = 443
		case "socks5":
			port = 1080
		}
	}
	pu := &ProxyURL{Scheme: scheme, Host: host, Port: port}
	if u.User != nil {
		pu.User = u.User.Username()
		pu.Pass, _ = u.User.Password()
		pu.hasAuth = true
	}
	return pu, nil
}

type strError string

func (s strError) Error() string { return string(s) }

// Settings mirrors the base settings' proxy_settings field.
type Settings struct {
	HTTPProxy      *ProxyURL
	HTTPSProxy     *ProxyURL
	DisableProxies bool
	NoProxyHosts   []string
}

// ForURL implements the §4.5 resolution rule.
func (s *Settings) ForURL(u *url.URL) *ProxyURL {
	if s == nil || s.DisableProxies {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	for _, suffix := range s.NoProxyHosts {
		if host != "" && strings.HasSuffix(host, suffix) {
			return nil
		}
	}
	switch u.Scheme {
	case "http":
		return s.HTTPProxy
	case "https":
		return s.HTTPSProxy
	default:
		return nil
	}
}

// getEnv reads name case-insensitively, preferring the lowercase form,
// matching the original implementation's lookup order.
func getEnv(name string) (string, bool) {
	if v, ok := os.LookupEnv(strings.ToLower(name)); ok {
		return v, true
	}
	if v, ok := os.LookupEnv(strings.ToUpper(name)); ok {
		return v, true
	}
	return "", false
}

func getEnvURL(logger *log.Logger, name string) *ProxyURL {
	v, ok := getEnv(name)
	if !ok {
		return nil
	}
	if strings.TrimSpace(v) == "" {
		return nil
	}
	pu, err := ParseProxyURL(v)
	if err != nil {
		logger.Printf("attohttpc: ignoring invalid proxy URL in %s: %v", name, err)
		return nil
	}
	if pu.Scheme != "http" && pu.Scheme != "https" && pu.Scheme != "socks5" {
		logger.Printf("attohttpc: ignoring proxy URL with unsupported scheme in %s", name)
		return nil
	}
	return pu
}

// FromEnv builds Settings from ALL_PROXY/HTTP_PROXY/HTTPS_PROXY/NO_PROXY.
// Scheme-specific variables override ALL_PROXY when both are present. A
// logger of nil defaults to log.Default().
func FromEnv(logger *log.Logger) *Settings {
	if logger == nil {
		logger = log.Default()
	}

	s := &Settings{}

	allProxy := getEnvURL(logger, "ALL_PROXY")
	s.HTTPProxy = allProxy
	s.HTTPSProxy = allProxy

	if v := getEnvURL(logger, "HTTP_PROXY"); v != nil {
		s.HTTPProxy = v
	}
	if v := getEnvURL(logger, "HTTPS_PROXY"); v != nil {
		s.HTTPSProxy = v
	}

	if raw, ok := getEnv("NO_PROXY"); ok {
		raw = strings.TrimSpace(raw)
		if raw == "*" {
			s.DisableProxies = true
		} else if raw != "" {
			for _, entry := range strings.Split(raw, ",") {
				entry = strings.ToLower(strings.TrimSpace(entry))
				entry = strings.TrimPrefix(entry, ".")
				if entry != "" {
					s.NoProxyHosts = append(s.NoProxyHosts, entry)
				}
			}
		}
	}

	return s
}
