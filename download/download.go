package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// UserAgent identifies the fetcher to remote servers.
	UserAgent = "UbuntuImageFetcher/1.0"

	// DefaultTimeout bounds a single fetch, body included.
	DefaultTimeout = 10 * time.Second
)

var defaultHeader = http.Header{
	"User-Agent": []string{UserAgent},
}

// Content is the body of a successful image fetch.
type Content struct {
	Body        []byte
	ContentType string // Declared by the server; always starts with "image/".
}

// Fetcher retrieves images over http.
type Fetcher struct {
	hc      *http.Client
	header  http.Header
	timeout time.Duration
}

// NewFetcher returns a fetcher whose requests are aborted after the given
// timeout. A timeout <= 0 selects DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		hc:      &http.Client{},
		header:  defaultHeader,
		timeout: timeout,
	}
}

// ValidateURL checks that u is an absolute http or https url.
func ValidateURL(u string) error {
	parsed, err := url.Parse(u)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid url %q: unsupported scheme %q", u, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", u)
	}

	return nil
}

// GetBody performs an http GET with url=u using the suppplied client and
// header. On success, the caller must close the returned response's body.
func GetBody(ctx context.Context, hc *http.Client, u string, header http.Header) (*http.Response, error) {
	log.Debugf("get: %s", u)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rsp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		rsp.Body.Close()
		return nil, fmt.Errorf("error status: %s", rsp.Status)
	}

	return rsp, nil
}

// Fetch retrieves the image at url=u. It returns a *NetworkError if the
// request cannot be completed or the server replies with a non-2xx status,
// and a *NotImageError if the declared content type is not an image type. The
// body of a non-image response is never read.
func (f *Fetcher) Fetch(ctx context.Context, u string) (*Content, error) {
	err := ValidateURL(u)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	rsp, err := GetBody(ctx, f.hc, u, f.header)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	defer rsp.Body.Close()

	contentType := rsp.Header.Get("Content-Type")
	if !IsImageType(contentType) {
		return nil, &NotImageError{URL: u, ContentType: contentType}
	}

	b, err := io.ReadAll(NewContextReader(ctx, rsp.Body))
	if err != nil {
		return nil, &NetworkError{URL: u, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	log.Debugf("fetched %d bytes: url=%s content_type=%s", len(b), u, contentType)

	return &Content{
		Body:        b,
		ContentType: contentType,
	}, nil
}

// IsImageType reports whether a Content-Type header value declares an image.
// The check is a plain prefix match; parameters and case are not normalized.
func IsImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
