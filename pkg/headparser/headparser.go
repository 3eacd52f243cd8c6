// Package headparser parses the HTTP/1.1 status line and header block of
// a response into a status code and an ordered header map, with size
// limits on both line length and header count.
package headparser

import (
	"log"

	"github.com/attohttpc/attohttpc-go/pkg/constants"
	"github.com/attohttpc/attohttpc-go/pkg/headers"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/linebuf"
)

// Parse reads one status line and the following header block from r.
// maxHeaders caps the number of accepted header names; exceeding it fails
// with a KindInvalidResponse/SubHeader error. Syntactically invalid
// header names are logged via logger and dropped rather than rejected;
// a nil logger defaults to log.Default().
func Parse(r *linebuf.Reader, maxHeaders int, logger *log.Logger) (int, *headers.Map, error) {
	if logger == nil {
		logger = log.Default()
	}

	statusLine, err := r.ReadLine(constants.MaxLineLength)
	if err != nil {
		return 0, nil, err
	}
	code, err := parseStatusLine(statusLine)
	if err != nil {
		return 0, nil, err
	}

	hdrs := headers.New()
	for {
		line, err := r.ReadLine(constants.MaxLineLength)
		if err != nil {
			return 0, nil, err
		}
		if len(line) == 0 {
			break
		}
		if hdrs.Len() >= maxHeaders {
			return 0, nil, httperr.NewResponse(httperr.SubHeader, "parse_headers", "too many response headers", nil)
		}

		col := indexByte(line, ':')
		if col < 0 {
			return 0, nil, httperr.NewResponse(httperr.SubHeader, "parse_headers", "header line missing colon", nil)
		}
		linebuf.ReplaceByte('\n', ' ', line[col+1:])

		name := string(linebuf.TrimByte(' ', line[:col]))
		value := linebuf.TrimByte(' ', line[col+1:])

		if !headers.IsValidName(name) {
			logger.Printf("attohttpc: dropped invalid response header name %q", name)
			continue
		}
		if !headers.IsValidValue(value) {
			return 0, nil, httperr.NewResponse(httperr.SubHeader, "parse_headers", "invalid header value", nil)
		}

		hdrs.Add(name, string(value))
	}

	return code, hdrs, nil
}

// parseStatusLine implements the §4.6 algorithm: split on spaces
// skipping empties, the first non-empty token is the version (discarded),
// the second is the status code.
func parseStatusLine(line []byte) (int, error) {
	fields := splitSkipEmpty(line)
	if len(fields) < 2 {
		return 0, httperr.NewResponse(httperr.SubStatusLine, "parse_status_line", "missing status code", nil)
	}
	code := fields[1]
	if len(code) != 3 {
		return 0, httperr.NewResponse(httperr.SubStatusCode, "parse_status_line", "status code must be 3 digits", nil)
	}
	n := 0
	for _, b := range code {
		if b < '0' || b > '9' {
			return 0, httperr.NewResponse(httperr.SubStatusCode, "parse_status_line", "status code must be numeric", nil)
		}
		n = n*10 + int(b-'0')
	}
	return n, nil
}

func splitSkipEmpty(line []byte) [][]byte {
	var out [][]byte
	start := -1
	for i, b := range line {
		if b == ' ' {
			if start >= 0 {
				out = append(out, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, line[start:])
	}
	return out
}

func indexByte(buf []byte, b byte) int {
	for i, c := range buf {
		if c == b {
			return i
		}
	}
	return -1
}
