package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brettbedarf/ramvfs"
	"github.com/brettbedarf/ramvfs/internal/util"
)

// DefaultMaxHTTPContent bounds the body accepted from an HTTP source
const DefaultMaxHTTPContent = 1 << 20

var ErrContentTooLarge = errors.New("content too large")

// HTTPClient is the subset of [http.Client] used to fetch sources
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSource contains http-specific source request fields
type HTTPSource struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	// MaxBytes overrides DefaultMaxHTTPContent when positive
	MaxBytes int64 `json:"max_bytes,omitempty"`
}

// RegisterHTTP registers the http source type fetching with client
func RegisterHTTP(r *Registry, client HTTPClient) {
	r.Register(HTTPSourceType, func(raw []byte) (ramvfs.ContentProvider, error) {
		return NewHTTPProvider(client, raw)
	})
}

// HTTPProvider implements [ramvfs.ContentProvider] for HTTP sources.
// Fetched content is always read-only.
type HTTPProvider struct {
	client HTTPClient
	source HTTPSource
}

// NewHTTPProvider decodes and validates raw. Only absolute http(s) URLs
// without user info are accepted.
func NewHTTPProvider(client HTTPClient, raw []byte) (*HTTPProvider, error) {
	var src HTTPSource
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, fmt.Errorf("decode http source: %w", err)
	}
	src.URL = strings.TrimSpace(src.URL)
	if err := validateURL(src.URL); err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{client: client, source: src}, nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("http source: empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("http source: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("http source: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("http source: missing host in %q", raw)
	}
	if u.User != nil {
		return errors.New("http source: user info not allowed in url")
	}
	return nil
}

func (h *HTTPProvider) newRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.source.URL, nil)
	if err != nil {
		return nil, err
	}

	// Add custom headers
	for k, v := range h.source.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func (h *HTTPProvider) Content(ctx context.Context) ([]byte, error) {
	logger := util.GetLogger("HTTPProvider")

	req, err := h.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", h.source.URL, resp.Status)
	}

	limit := h.source.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxHTTPContent
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("GET %s: %w (limit %d bytes)", h.source.URL, ErrContentTooLarge, limit)
	}
	logger.Debug().Str("url", h.source.URL).Int("bytes", len(data)).Msg("Fetched http source")
	return data, nil
}

func (h *HTTPProvider) ReadOnly() bool {
	return true
}
