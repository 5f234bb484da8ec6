package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/DMarby/utility-docs/internal/cache"
	"github.com/DMarby/utility-docs/internal/cache/memory"
	"github.com/tilinna/clock"
)

func TestMemory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := memory.New()

	t.Run("get item", func(t *testing.T) {
		// Add item to the cache
		provider.Set(ctx, "foo", []byte("bar"))

		// Get item from the cache
		data, err := provider.Get(ctx, "foo")
		if err != nil {
			t.Fatal(err)
		}

		if string(data) != "bar" {
			t.Fatal("wrong data")
		}
	})

	t.Run("get nonexistant item", func(t *testing.T) {
		_, err := provider.Get(ctx, "notfound")
		if err == nil {
			t.Fatal("no error")
		}

		if err != cache.ErrNotFound {
			t.Fatalf("wrong error %s", err)
		}
	})
}

func TestLen(t *testing.T) {
	ctx := context.Background()
	provider := memory.New()

	if provider.Len() != 0 {
		t.Fatal("cache not empty")
	}

	provider.Set(ctx, "page:cursor", []byte("<html></html>"))
	provider.Set(ctx, "page:cursor", []byte("<html></html>"))
	provider.Set(ctx, "page:width", []byte("<html></html>"))

	if provider.Len() != 2 {
		t.Fatalf("wrong length %d", provider.Len())
	}
}

func TestMaxEntries(t *testing.T) {
	ctx := context.Background()
	provider := memory.New(memory.MaxEntries(2))

	provider.Set(ctx, "page:cursor", []byte("cursor"))
	provider.Set(ctx, "page:width", []byte("width"))

	// Using cursor makes width the least recently used
	if _, err := provider.Get(ctx, "page:cursor"); err != nil {
		t.Fatal(err)
	}

	provider.Set(ctx, "page:outline", []byte("outline"))

	if provider.Len() != 2 {
		t.Fatalf("wrong length %d", provider.Len())
	}

	if _, err := provider.Get(ctx, "page:width"); err != cache.ErrNotFound {
		t.Errorf("page:width wasn't evicted: %v", err)
	}

	for _, key := range []string{"page:cursor", "page:outline"} {
		if _, err := provider.Get(ctx, key); err != nil {
			t.Errorf("%s: %s", key, err)
		}
	}
}

func TestTTL(t *testing.T) {
	ctx := context.Background()
	mockClock := clock.NewMock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	provider := memory.New(memory.TTL(time.Minute), memory.Clock(mockClock))

	provider.Set(ctx, "page:cursor", []byte("cursor"))

	mockClock.Add(59 * time.Second)
	if _, err := provider.Get(ctx, "page:cursor"); err != nil {
		t.Fatalf("expired early: %s", err)
	}

	mockClock.Add(time.Second)
	if _, err := provider.Get(ctx, "page:cursor"); err != cache.ErrNotFound {
		t.Fatalf("wrong error %v", err)
	}

	if provider.Len() != 0 {
		t.Errorf("expired entry wasn't removed")
	}
}
