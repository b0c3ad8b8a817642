// Package fetch implements the Fetcher interface.
// Exports are read from local files or downloaded from published document
// URLs; Source picks the right fetcher for a location.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/jj-sm/html2wikijs/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "html2wikijs/1.0 (https://github.com/jj-sm/html2wikijs)"
	maxBodySize      = 64 << 20
)

// IsURL reports whether location should be fetched over HTTP.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Source fetches URLs over HTTP and everything else from disk.
type Source struct {
	http *HTTPFetcher
	file *FileFetcher
}

// New creates a Source with default fetchers.
func New() *Source {
	return &Source{http: NewHTTP(nil), file: NewFile()}
}

// Fetch retrieves the export at location.
func (s *Source) Fetch(ctx context.Context, location string) (*core.FetchResult, error) {
	if IsURL(location) {
		return s.http.Fetch(ctx, location)
	}
	return s.file.Fetch(ctx, location)
}

// HTTPFetcher fetches published exports via HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTP creates an HTTPFetcher. A nil client gets a sensible timeout.
func NewHTTP(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, &NotFoundError{Location: url}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &StatusError{Location: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	text, err := decode(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}

	return &core.FetchResult{Source: url, HTML: text}, nil
}

// FileFetcher reads exports from the local file system.
type FileFetcher struct{}

// NewFile creates a FileFetcher.
func NewFile() *FileFetcher {
	return &FileFetcher{}
}

// Fetch reads the file at path.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Location: path, Err: err}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text, err := decode(b, "")
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &core.FetchResult{Source: path, HTML: text}, nil
}

// decode converts an HTML document to UTF-8. Valid UTF-8 is kept as is,
// anything else is decoded using the byte order mark, the content type or a
// <meta> declaration.
func decode(b []byte, contentType string) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	r, err := charset.NewReader(bytes.NewReader(b), contentType)
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
