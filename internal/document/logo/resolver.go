package logo

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/kukypng/oliver/internal/cache"
	"github.com/kukypng/oliver/internal/observability/tracing"
	"go.uber.org/zap"
)

// maxLogoBytes caps the response body read for a logo fetch.
const maxLogoBytes = 5 << 20

// Resolved is a fetched and decoded shop logo, ready for embedding.
type Resolved struct {
	Data   []byte
	Format string // "png", "jpeg" or "gif"
	Image  image.Image
}

// DataURI returns the logo as a self-contained base64 data URI.
func (r *Resolved) DataURI() string {
	return fmt.Sprintf("data:image/%s;base64,%s", r.Format, base64.StdEncoding.EncodeToString(r.Data))
}

// Resolver turns a shop's logo URL into an embeddable image. Any fetch or
// decode failure downgrades to "no logo"; generation never fails because of
// a logo problem.
type Resolver struct {
	client  *http.Client
	cache   cache.Cache[string, *Resolved]
	ttl     time.Duration
	timeout time.Duration
	log     *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the HTTP client; tests use this to force failures.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.client = tracing.WrapHTTPClient(client)
		}
	}
}

// WithCache replaces the resolved-logo cache.
func WithCache(c cache.Cache[string, *Resolved], ttl time.Duration) Option {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
			r.ttl = ttl
		}
	}
}

// WithTimeout bounds each fetch; a hung logo host becomes a fallback
// instead of a hung generation.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

func NewResolver(log *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		client:  tracing.WrapHTTPClient(&http.Client{}),
		cache:   cache.NewTTLCache[string, *Resolved](),
		ttl:     5 * time.Minute,
		timeout: 10 * time.Second,
		log:     log.Named("document.logo"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches and decodes the logo at url. A nil result means "render
// the placeholder"; it is never an error.
func (r *Resolver) Resolve(ctx context.Context, url string) *Resolved {
	if url == "" {
		return nil
	}
	if cached, ok := r.cache.Get(url); ok {
		return cached
	}

	resolved, err := r.fetch(ctx, url)
	if err != nil {
		r.log.Warn("logo fetch failed, falling back to placeholder",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil
	}

	r.cache.Set(url, resolved, r.ttl)
	return resolved
}

func (r *Resolver) fetch(ctx context.Context, url string) (*Resolved, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxLogoBytes {
		return nil, errors.New("logo exceeds size limit")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	return &Resolved{Data: data, Format: format, Image: img}, nil
}
