// Package decompress optionally wraps a body reader with a GZIP or
// DEFLATE decoder chosen from the response's Content-Encoding header.
package decompress

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"github.com/attohttpc/attohttpc-go/pkg/headers"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
)

// New inspects hdrs' Content-Encoding and wraps r accordingly. A missing
// or empty header passes r through unchanged. "deflate" and "gzip" are
// the only recognized codings; any other non-empty value fails with
// InvalidResponse, since multiple/unknown codings are not supported.
func New(hdrs *headers.Map, r io.Reader) (io.Reader, error) {
	enc, ok := hdrs.Get("Content-Encoding")
	if !ok || enc == "" {
		return r, nil
	}
	switch enc {
	case "deflate":
		return flate.NewReader(r), nil
	case "gzip":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, httperr.NewResponse(httperr.SubEncoding, "decompress", "invalid gzip stream", err)
		}
		return gz, nil
	default:
		return nil, httperr.NewResponse(httperr.SubEncoding, "decompress", "unsupported content-encoding: "+enc, nil)
	}
}
