package mock

import (
	"context"
	"fmt"

	"github.com/DMarby/utility-docs/internal/cache"
)

// Provider is a mock cache
// "page:missing" and "page:seterror" are never cached, "page:error" fails, everything else is "cached"
type Provider struct{}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (data []byte, err error) {
	switch key {
	case "page:missing", "page:loaderror", "page:seterror", "healthcheck":
		return nil, cache.ErrNotFound
	case "page:error":
		return nil, fmt.Errorf("get error")
	}

	return []byte("cached"), nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, data []byte) (err error) {
	if key == "page:seterror" {
		return fmt.Errorf("set error")
	}

	return nil
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {}
