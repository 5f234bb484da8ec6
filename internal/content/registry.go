package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/DMarby/utility-docs/internal/storage"
	"gopkg.in/yaml.v3"
)

const indexDocument = "index.yaml"

// Index lists the pages of the catalog, in navigation order
type Index struct {
	Pages []string `yaml:"pages"`
}

// Registry implements a Provider backed by documents in a storage.Provider
type Registry struct {
	pages map[string]*Page
	order []string
}

// Option configures how a Registry loads
type Option func(*options)

type options struct {
	skipLog *logger.Logger
}

// SkipInvalid leaves out pages that fail to load or validate instead of failing, logging why
// Their routes then render as not found
func SkipInvalid(log *logger.Logger) Option {
	return func(o *options) {
		o.skipLog = log
	}
}

// New loads and validates every page listed in the index document
func New(ctx context.Context, store storage.Provider, opts ...Option) (*Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	data, err := store.Get(ctx, indexDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", indexDocument, err)
	}

	var index Index
	if err := decode(data, &index); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", indexDocument, err)
	}

	if len(index.Pages) == 0 {
		return nil, fmt.Errorf("%s does not list any pages", indexDocument)
	}

	registry := &Registry{
		pages: make(map[string]*Page, len(index.Pages)),
		order: make([]string, 0, len(index.Pages)),
	}

	seen := make(map[string]struct{}, len(index.Pages))
	for _, key := range index.Pages {
		if _, exists := seen[key]; exists {
			return nil, fmt.Errorf("page %q is listed twice in %s", key, indexDocument)
		}
		seen[key] = struct{}{}

		page, err := loadPage(ctx, store, key)
		if err != nil {
			if o.skipLog == nil || ctx.Err() != nil {
				return nil, err
			}

			o.skipLog.Errorw("skipping invalid page",
				"page", key,
				"error", err,
			)
			continue
		}

		registry.pages[key] = page
		registry.order = append(registry.order, key)
	}

	if len(registry.order) == 0 {
		return nil, fmt.Errorf("none of the pages in %s are valid", indexDocument)
	}

	return registry, nil
}

// loadPage reads <key>.yaml, falling back to <key>.json
func loadPage(ctx context.Context, store storage.Provider, key string) (*Page, error) {
	var data []byte
	var err error
	for _, name := range []string{key + ".yaml", key + ".json"} {
		data, err = store.Get(ctx, name)
		if !errors.Is(err, storage.ErrNotFound) {
			break
		}
	}

	if err != nil {
		return nil, fmt.Errorf("error loading page %q: %w", key, err)
	}

	var page Page
	if err := decode(data, &page); err != nil {
		return nil, fmt.Errorf("error decoding page %q: %w", key, err)
	}

	if page.Key == "" {
		page.Key = key
	}

	if page.Key != key {
		return nil, fmt.Errorf("page %q has mismatching key %q", key, page.Key)
	}

	if err := Validate(&page); err != nil {
		return nil, err
	}

	return &page, nil
}

// decode strictly decodes a yaml (or json) document
func decode(data []byte, v interface{}) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(v)
}

// Get returns a copy of the page with the given key
func (r *Registry) Get(ctx context.Context, key string) (*Page, error) {
	page, exists := r.pages[key]
	if !exists {
		return nil, ErrNotFound
	}

	return page.Clone(), nil
}

// List returns copies of all pages in index order
func (r *Registry) List(ctx context.Context) ([]Page, error) {
	pages := make([]Page, 0, len(r.order))
	for _, key := range r.order {
		pages = append(pages, *r.pages[key].Clone())
	}

	return pages, nil
}

// Shutdown shuts down the registry
func (r *Registry) Shutdown() {}
