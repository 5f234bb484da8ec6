package mock

import (
	"context"
	"fmt"
)

// Provider implements a broken document storage
type Provider struct {
}

// Get always fails
func (p *Provider) Get(ctx context.Context, name string) ([]byte, error) {
	return nil, fmt.Errorf("get error")
}
