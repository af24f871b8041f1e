package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cavaliergopher/grab/v3"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
)

// ErrNetwork marks failures to reach a mirror, GitHub, or to complete a
// transfer. Callers decide whether to fall back; the gateway never retries.
var ErrNetwork = errors.New("network failure")

const userAgent = "lbe-installer"

// MirrorSelector resolves the mirror base URL for this run. An empty result
// means fetch directly.
type MirrorSelector interface {
	Select(ctx context.Context) string
}

// Options configures a Gateway.
type Options struct {
	// UseMirror routes requests through the selected mirror.
	UseMirror bool
	Selector  MirrorSelector
	// Client defaults to an http.Client with a generous overall timeout.
	Client *http.Client
}

// Body is a streaming response. The caller must read and close it.
type Body struct {
	io.ReadCloser
	// Size is the Content-Length, or -1 when unknown.
	Size int64
	URL  string
}

// Gateway performs GETs against GitHub release URLs, optionally through a
// download mirror.
type Gateway struct {
	useMirror bool
	selector  MirrorSelector
	client    *http.Client
	grab      *grab.Client
}

// New builds a Gateway.
func New(opts Options) *Gateway {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Minute}
	}
	gc := grab.NewClient()
	gc.HTTPClient = client
	gc.UserAgent = userAgent
	return &Gateway{
		useMirror: opts.UseMirror && opts.Selector != nil,
		selector:  opts.Selector,
		client:    client,
		grab:      gc,
	}
}

// EffectiveURL returns the URL actually requested for rawURL. The first call
// with mirrors enabled triggers mirror selection.
func (g *Gateway) EffectiveURL(ctx context.Context, rawURL string) string {
	if !g.useMirror {
		return rawURL
	}
	base := g.selector.Select(ctx)
	if base == "" {
		return rawURL
	}
	return strings.TrimRight(base, "/") + "/" + rawURL
}

// Fetch issues a GET and returns the response body as a stream.
func (g *Gateway) Fetch(ctx context.Context, rawURL string) (*Body, error) {
	target := g.EffectiveURL(ctx, rawURL)
	logging.Infof("Download URL: %s\n", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", target, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrNetwork, target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: HTTP %d", ErrNetwork, target, resp.StatusCode)
	}
	logging.Debugf("Verbose: response url=%s size=%d\n", target, resp.ContentLength)

	return &Body{ReadCloser: resp.Body, Size: resp.ContentLength, URL: target}, nil
}

// DownloadFile saves rawURL to dest, replacing any existing file.
func (g *Gateway) DownloadFile(ctx context.Context, rawURL, dest string) error {
	target := g.EffectiveURL(ctx, rawURL)
	logging.Infof("Download URL: %s\n", target)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}

	req, err := grab.NewRequest(dest, target)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", target, err)
	}
	req = req.WithContext(ctx)
	req.NoResume = true

	resp := g.grab.Do(req)
	if err := resp.Err(); err != nil {
		return fmt.Errorf("%w: downloading %s: %v", ErrNetwork, target, err)
	}
	logging.Debugf("Verbose: saved %s (%d bytes)\n", resp.Filename, resp.BytesComplete())
	return nil
}
