package cache

import (
	"context"
	"errors"

	"github.com/DMarby/utility-docs/internal/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

// Errors
var (
	ErrNotFound = errors.New("not found in cache")
)

// Lookup results
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

var lookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result, a miss means the object was rendered.",
	},
	[]string{"result"},
)

// Provider is an interface for getting and setting cached objects
type Provider interface {
	Get(ctx context.Context, key string) (data []byte, err error)
	Set(ctx context.Context, key string, data []byte) (err error)
	Shutdown()
}

// LoaderFunc is a function for loading data into a cache
type LoaderFunc func(ctx context.Context, key string) (data []byte, err error)

// Auto is a cache that renders missing objects with a loader and stores them
type Auto struct {
	Tracer   *tracing.Tracer
	Provider Provider
	Loader   LoaderFunc

	lookupGroup singleflight.Group
}

// Get returns an object from the cache if it exists, otherwise it loads it into the cache and returns it
func (a *Auto) Get(ctx context.Context, key string) ([]byte, error) {
	return a.GetWith(ctx, key, a.Loader)
}

// GetWith is like Get, but loads missing objects with loader instead of the Loader of the cache.
// Pages need it, as their key only holds a hash of the state they are rendered for
func (a *Auto) GetWith(ctx context.Context, key string, loader LoaderFunc) ([]byte, error) {
	ctx, span := a.Tracer.Start(ctx, "cache.Auto.Get")
	defer span.End()
	span.SetAttributes(attribute.String("cache.key", key))

	data, err := a.Provider.Get(ctx, key)
	switch {
	case err == nil:
		lookups.WithLabelValues(resultHit).Inc()
		return data, nil
	case !errors.Is(err, ErrNotFound):
		lookups.WithLabelValues(resultError).Inc()
		return nil, err
	}

	lookups.WithLabelValues(resultMiss).Inc()

	// Concurrent misses for the same key share one load
	v, err, _ := a.lookupGroup.Do(key, func() (interface{}, error) {
		data, err := loader(ctx, key)
		if err != nil {
			return nil, err
		}

		if err := a.Provider.Set(ctx, key, data); err != nil {
			return nil, err
		}

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data, _ = v.([]byte)
	return data, nil
}
