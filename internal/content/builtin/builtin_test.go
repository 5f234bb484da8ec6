package builtin_test

import (
	"context"
	"testing"

	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/content/builtin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	store, err := builtin.Storage()
	require.NoError(t, err)

	// Loading without SkipInvalid fails on any malformed page
	registry, err := content.New(context.Background(), store)
	require.NoError(t, err)

	pages, err := registry.List(context.Background())
	require.NoError(t, err)

	keys := make([]string, 0, len(pages))
	for _, page := range pages {
		keys = append(keys, page.Key)
		assert.NotEmpty(t, page.Utilities, page.Key)
	}

	assert.Equal(t, []string{"cursor", "pointer-events", "user-select", "width", "outline"}, keys)
}

func TestBuiltinPlaygrounds(t *testing.T) {
	store, err := builtin.Storage()
	require.NoError(t, err)

	registry, err := content.New(context.Background(), store)
	require.NoError(t, err)

	pages, err := registry.List(context.Background())
	require.NoError(t, err)

	for _, page := range pages {
		if page.Playground == nil {
			continue
		}

		for _, option := range page.Playground.Options {
			assert.Contains(t, page.Playground.Build(option), option, "%s: %s", page.Key, option)
		}
	}
}
