// Package content resolves page locators to markup, from a predefined-page
// cache when possible and through a Fetcher otherwise.
package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
	"gopkg.in/yaml.v3"
)

// Resolver combines a markup cache with a Fetcher.
type Resolver struct {
	cache   *Cache
	fetcher Fetcher
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache replaces the default cache.
func WithCache(cache *Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithLogger configures a logger for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver fetching misses through fetcher.
// A nil fetcher makes every miss an error.
func NewResolver(fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		cache:   NewCache(),
		fetcher: fetcher,
		logger:  internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cached returns markup already known for locator.
func (r *Resolver) Cached(locator string) (string, bool) {
	return r.cache.Get(locator)
}

// Fetch retrieves markup for locator and caches successful results.
func (r *Resolver) Fetch(ctx context.Context, locator string) (string, error) {
	if r.fetcher == nil {
		return "", &FetchError{Locator: locator, Err: fmt.Errorf("no fetcher configured")}
	}

	r.logger.Debug("fetching page template", "locator", locator)

	markup, err := r.fetcher.Fetch(ctx, locator)
	if err != nil {
		r.logger.Warn("page template fetch failed", "locator", locator, "error", err)
		return "", err
	}

	r.cache.Set(locator, markup)
	return markup, nil
}

// Preload stores markup for locator without fetching it.
func (r *Resolver) Preload(locator, markup string) {
	r.cache.Set(locator, markup)
}

// Manifest lists predefined pages, keyed by locator.
type Manifest struct {
	Pages map[string]string `yaml:"pages"`
}

// LoadManifest decodes a YAML manifest:
//
//	pages:
//	  home.html: |
//	    <page title="Home">...</page>
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("content: decode manifest: %w", err)
	}
	return &m, nil
}

// PreloadManifest stores every page of m in the cache.
func (r *Resolver) PreloadManifest(m *Manifest) {
	for locator, markup := range m.Pages {
		r.Preload(locator, markup)
	}
}
