// Package textdecode optionally wraps a byte body reader with a
// charset-to-UTF-8 converter, choosing the charset from the response's
// Content-Type header, a caller-supplied default, or Windows-1252.
package textdecode

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/attohttpc/attohttpc-go/pkg/headers"
)

// Choose implements the §4.9 charset-selection rule: parse Content-Type,
// locate the first ';' and the "charset=" token after it; if that label
// is recognized, use it; otherwise fall back to def (if non-nil), then to
// Windows-1252.
func Choose(hdrs *headers.Map, def encoding.Encoding) encoding.Encoding {
	if ct, ok := hdrs.Get("Content-Type"); ok {
		if idx := strings.IndexByte(ct, ';'); idx >= 0 {
			rest := strings.TrimSpace(ct[idx+1:])
			lower := strings.ToLower(rest)
			if strings.HasPrefix(lower, "charset=") {
				label := strings.TrimSpace(rest[len("charset="):])
				label = strings.Trim(label, `"`)
				if enc, err := htmlindex.Get(label); err == nil {
					return enc
				}
			}
		}
	}
	if def != nil {
		return def
	}
	return charmap.Windows1252
}

// NewReader wraps r with a decoder that lossily converts bytes in the
// chosen charset to UTF-8: malformed input becomes replacement
// characters rather than a decode error.
func NewReader(hdrs *headers.Map, def encoding.Encoding, r io.Reader) io.Reader {
	enc := Choose(hdrs, def)
	return transform.NewReader(r, enc.NewDecoder())
}
