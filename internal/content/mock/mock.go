package mock

import (
	"context"
	"fmt"

	"github.com/DMarby/utility-docs/internal/content"
)

// Provider implements a broken content provider
type Provider struct {
}

// Get always fails
func (p *Provider) Get(ctx context.Context, key string) (*content.Page, error) {
	return nil, fmt.Errorf("get error")
}

// List always fails
func (p *Provider) List(ctx context.Context) ([]content.Page, error) {
	return nil, fmt.Errorf("list error")
}

// Shutdown shuts down the provider
func (p *Provider) Shutdown() {}
