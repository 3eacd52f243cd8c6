package request

import (
	"net/url"

	"github.com/attohttpc/attohttpc-go/pkg/httperr"
)

// ParseBaseURL validates raw as an absolute http(s) URL the way New does,
// without constructing a builder.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, httperr.New(httperr.KindInvalidBaseURL, "parse_url", "invalid base url "+raw, err)
	}
	return u, nil
}

// IsTimeoutError reports whether err represents a timeout at any layer.
func IsTimeoutError(err error) bool {
	return httperr.IsTimeout(err)
}
