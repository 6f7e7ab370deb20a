package metcolour

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PixelSource fetches raw image bytes for a URL.
type PixelSource interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// HTTPPixelSource downloads images over HTTP. PreferredClient (if set) is
// tried first and HTTPClient is the fallback.
type HTTPPixelSource struct {
	PreferredClient *http.Client
	HTTPClient      *http.Client  // nil = http.DefaultClient
	UserAgent       string        // default: DefaultUserAgent
	Timeout         time.Duration // per-attempt timeout (default: 10s)
	MaxBytes        int64         // reject larger bodies (default: 5MB)
}

// Download implements PixelSource. When both clients fail the fallback
// client's error is returned.
func (s *HTTPPixelSource) Download(ctx context.Context, url string) ([]byte, error) {
	if s.PreferredClient != nil {
		data, err := s.fetch(ctx, s.PreferredClient, url)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrNetwork, ctx.Err())
		}
	}

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return s.fetch(ctx, client, url)
}

func (s *HTTPPixelSource) fetch(ctx context.Context, client *http.Client, imageURL string) ([]byte, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBytes := s.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	ua := s.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", ua)

	resp, err := client.Do(req) //nolint:gosec // G704: URL comes from the catalog record
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, imageURL)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrNetwork, resp.StatusCode, imageURL)
	}

	ct := resp.Header.Get("Content-Type")
	// Strip MIME parameters: "image/jpeg; charset=utf-8" → "image/jpeg"
	if idx := strings.IndexByte(ct, ';'); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	if !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: unexpected content type %q from %s", ErrNetwork, ct, imageURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: image larger than %d bytes: %s", ErrNetwork, maxBytes, imageURL)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body from %s", ErrNetwork, imageURL)
	}
	return data, nil
}
