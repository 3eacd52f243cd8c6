package request

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/attohttpc/attohttpc-go/pkg/basestream"
	"github.com/attohttpc/attohttpc-go/pkg/bodyframer"
	"github.com/attohttpc/attohttpc-go/pkg/constants"
	"github.com/attohttpc/attohttpc-go/pkg/decompress"
	"github.com/attohttpc/attohttpc-go/pkg/headers"
	"github.com/attohttpc/attohttpc-go/pkg/headparser"
	"github.com/attohttpc/attohttpc-go/pkg/httperr"
	"github.com/attohttpc/attohttpc-go/pkg/linebuf"
	"github.com/attohttpc/attohttpc-go/pkg/proxypolicy"
	"github.com/attohttpc/attohttpc-go/pkg/textdecode"
	"github.com/attohttpc/attohttpc-go/pkg/timing"

	"golang.org/x/text/encoding"
)

var redirectStatuses = map[int]bool{301: true, 302: true, 303: true, 307: true, 308: true}

// Send drives a PreparedRequest through connect/write/parse, following
// redirects per its settings, and returns the final Response. The method,
// headers and body are preserved unchanged across every hop.
func Send(req *PreparedRequest) (*Response, error) {
	currentURL := req.URL
	var deadline time.Time
	if req.Settings.Timeout > 0 {
		deadline = time.Now().Add(req.Settings.Timeout)
	}

	redirections := 0
	for {
		proxy := req.Settings.Proxy.ForURL(currentURL)

		hdrs := req.Headers.Clone()
		if proxy != nil && proxy.Scheme != "socks5" && currentURL.Scheme == "http" {
			if err := setHost(hdrs, proxy.Host, proxy.Port); err != nil {
				return nil, err
			}
		} else if err := setHostFromURL(hdrs, currentURL); err != nil {
			return nil, err
		}
		hdrs.Set("Connection", "close")
		hdrs.SetIfMissing("Accept", "*/*")
		hdrs.SetIfMissing("User-Agent", constants.DefaultUserAgent)
		if req.Settings.AllowCompression {
			hdrs.SetIfMissing("Accept-Encoding", "gzip, deflate")
		}
		if req.Settings.Jar != nil {
			if v, ok := req.Settings.Jar.HeaderValueForURL(currentURL); ok && v != "" {
				hdrs.Set("Cookie", v)
			}
		}
		switch req.Body.Kind() {
		case BodyKnownLength:
			if n := req.Body.Len(); n > 0 {
				hdrs.Set("Content-Length", strconv.FormatInt(n, 10))
			}
			if ct := req.Body.ContentType(); ct != "" {
				hdrs.SetIfMissing("Content-Type", ct)
			}
		case BodyChunked:
			hdrs.Set("Transfer-Encoding", "chunked")
			if ct := req.Body.ContentType(); ct != "" {
				hdrs.SetIfMissing("Content-Type", ct)
			}
		}

		timer := timing.NewTimer()

		info := basestream.Info{
			Scheme:             currentURL.Scheme,
			Host:               currentURL.Hostname(),
			Port:               portOf(currentURL),
			ConnectTimeout:     req.Settings.ConnectTimeout,
			ReadTimeout:        req.Settings.ReadTimeout,
			Deadline:           deadline,
			Proxy:              proxy,
			AcceptInvalidCerts: req.Settings.AcceptInvalidCerts,
			AcceptInvalidHosts: req.Settings.AcceptInvalidHostnames,
			RootCAs:            req.Settings.RootCertificatesPEM,
			ClientCertPEM:      req.Settings.ClientCertPEM,
			ClientKeyPEM:       req.Settings.ClientKeyPEM,
			TLSMinVersion:      req.Settings.TLSMinVersion,
			TLSMaxVersion:      req.Settings.TLSMaxVersion,
			Timer:              timer,
		}

		stream, err := basestream.Connect(context.Background(), info)
		if err != nil {
			return nil, err
		}

		if err := writeRequest(stream, req.Method, currentURL, proxy, hdrs, req.Body); err != nil {
			stream.Close()
			return nil, err
		}

		timer.StartTTFB()
		resp, err := buildResponse(stream, req.Settings.MaxHeaders, req.Settings.DefaultCharset, req.Settings.Logger)
		timer.EndTTFB()
		if err != nil {
			stream.Close()
			return nil, err
		}
		metrics := timer.GetMetrics()
		resp.Metrics = &metrics

		if req.Settings.Jar != nil {
			if values := resp.Headers.Values("Set-Cookie"); len(values) > 0 {
				req.Settings.Jar.StoreCookiesForURL(currentURL, values)
			}
		}

		if !req.Settings.FollowRedirects || !redirectStatuses[resp.StatusCode] {
			return resp, nil
		}

		resp.discardBody()

		redirections++
		if redirections > req.Settings.MaxRedirections {
			return nil, httperr.New(httperr.KindTooManyRedirections, "send", fmt.Sprintf("exceeded %d redirections", req.Settings.MaxRedirections), nil)
		}

		location, ok := resp.Headers.Get("Location")
		if !ok {
			return nil, httperr.NewResponse(httperr.SubLocationHdr, "send", "redirect response missing Location", nil)
		}
		nextURL, err := baseRedirectURL(location, currentURL)
		if err != nil {
			return nil, err
		}
		currentURL = nextURL
	}
}

func portOf(u *url.URL) int {
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			return n
		}
	}
	if u.Scheme == "https" {
		return 443
	}
	return 80
}

func setHostFromURL(hdrs *headers.Map, u *url.URL) error {
	if u.Hostname() == "" {
		return httperr.New(httperr.KindInvalidURLHost, "set_host", "url has no host", nil)
	}
	return setHost(hdrs, u.Hostname(), portOf(u))
}

func setHost(hdrs *headers.Map, host string, port int) error {
	if host == "" {
		return httperr.New(httperr.KindInvalidURLHost, "set_host", "empty host", nil)
	}
	if port == 80 || port == 443 {
		hdrs.Set("Host", host)
	} else {
		hdrs.Set("Host", fmt.Sprintf("%s:%d", host, port))
	}
	return nil
}

// baseRedirectURL resolves a Location header against the previous
// request URL: absolute locations are used as-is, relative locations are
// joined against previous.
func baseRedirectURL(location string, previous *url.URL) (*url.URL, error) {
	if u, err := url.Parse(location); err == nil && u.IsAbs() {
		return u, nil
	}
	joined, err := previous.Parse(location)
	if err != nil {
		return nil, httperr.NewResponse(httperr.SubRedirectURL, "redirect", "invalid redirection url", err)
	}
	return joined, nil
}

// writeRequest serializes the request line, headers and body to stream
// per §4.10: proxied plain-HTTP requests use the absolute-URI form; TLS
// and direct requests use path[?query].
func writeRequest(stream basestream.Stream, method Method, u *url.URL, proxy *proxypolicy.ProxyURL, hdrs *headers.Map, body Body) error {
	w := bufio.NewWriter(stream)

	requestTarget := requestTargetFor(u, proxy != nil && proxy.Scheme != "socks5")
	if _, err := fmt.Fprintf(w, "%s %s HTTP/1.1\r\n", method, requestTarget); err != nil {
		return httperr.New(httperr.KindIO, "write_request", "failed writing request line", err)
	}

	var headerErr error
	hdrs.Range(func(name, value string) {
		if headerErr != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", name, value); err != nil {
			headerErr = err
		}
	})
	if headerErr != nil {
		return httperr.New(httperr.KindIO, "write_request", "failed writing headers", headerErr)
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return httperr.New(httperr.KindIO, "write_request", "failed writing header terminator", err)
	}

	switch body.Kind() {
	case BodyEmpty:
	case BodyKnownLength:
		if err := body.WriteTo(w); err != nil {
			return httperr.New(httperr.KindIO, "write_request", "failed writing body", err)
		}
	case BodyChunked:
		cw := newChunkedWriter(w)
		if err := body.WriteTo(cw); err != nil {
			return httperr.New(httperr.KindIO, "write_request", "failed writing chunked body", err)
		}
		if err := cw.close(); err != nil {
			return httperr.New(httperr.KindIO, "write_request", "failed closing chunked body", err)
		}
	}

	if err := w.Flush(); err != nil {
		return httperr.New(httperr.KindIO, "write_request", "failed flushing request", err)
	}
	return stream.Flush()
}

func requestTargetFor(u *url.URL, hasProxy bool) string {
	if hasProxy && u.Scheme == "http" {
		return u.String()
	}
	if u.RawQuery != "" {
		return u.EscapedPath() + "?" + u.RawQuery
	}
	return u.EscapedPath()
}

// buildResponse parses the head off stream and assembles the reader
// stack (framer -> decompressor; the text decoder is added later by
// Text/TextWith), stripping the hop-by-hop Transfer-Encoding header from
// the exposed map.
func buildResponse(stream basestream.Stream, maxHeaders int, defaultCharset encoding.Encoding, logger *log.Logger) (*Response, error) {
	lr := linebuf.New(stream)
	code, hdrs, err := headparser.Parse(lr, maxHeaders, logger)
	if err != nil {
		return nil, err
	}

	var body io.Reader = lr
	framed, err := bodyframer.New(hdrs, body)
	if err != nil {
		return nil, err
	}
	body = framed

	decompressed, err := decompress.New(hdrs, body)
	if err != nil {
		return nil, err
	}
	body = decompressed

	hdrs.Del("Transfer-Encoding")

	return &Response{
		StatusCode:     code,
		Headers:        hdrs,
		stream:         stream,
		rawBody:        body,
		defaultCharset: defaultCharset,
	}, nil
}
