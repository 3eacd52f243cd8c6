// Package bodyframer selects and constructs the body reader for a
// response: chunked transfer-encoding or content-length framing.
package bodyframer

import (
	"io"
	"strconv"

	"github.com/attohttpc/attohttpc-go/pkg/headers"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
)

// New selects a framer based on hdrs: Transfer-Encoding: chunked (exact,
// case-sensitive match) takes priority over Content-Length; if neither is
// present, framing is undetermined and an error is returned.
func New(hdrs *headers.Map, r io.Reader) (io.Reader, error) {
	if te, ok := hdrs.Get("Transfer-Encoding"); ok && te == "chunked" {
		return NewChunkedReader(r), nil
	}
	if cl, ok := hdrs.Get("Content-Length"); ok {
		n, err := strconv.ParseUint(cl, 10, 64)
		if err != nil {
			return nil, httperr.NewResponse(httperr.SubBodyFraming, "body_framer", "invalid Content-Length", err)
		}
		return NewLengthReader(r, n), nil
	}
	return nil, httperr.NewResponse(httperr.SubBodyFraming, "body_framer", "no content-length or chunked", nil)
}
