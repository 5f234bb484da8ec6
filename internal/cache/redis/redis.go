package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/DMarby/utility-docs/internal/cache"
	"github.com/DMarby/utility-docs/internal/tracing"
	"github.com/mediocregopher/radix/v4"
)

// DefaultPrefix namespaces the keys of the service in a shared redis
const DefaultPrefix = "utility-docs:"

// Config configures the redis cache
type Config struct {
	Address  string
	PoolSize int
	// TTL expires rendered objects, so that content deploys are picked up. 0 keeps them forever
	TTL    time.Duration
	Prefix string // Defaults to DefaultPrefix
}

// Provider implements a redis cache
type Provider struct {
	client radix.Client
	tracer *tracing.Tracer
	ttl    time.Duration
	prefix string
}

// New connects to redis and checks that it answers
func New(ctx context.Context, tracer *tracing.Tracer, config Config) (*Provider, error) {
	poolConfig := radix.PoolConfig{
		Size: config.PoolSize,
	}

	client, err := poolConfig.New(ctx, "tcp", config.Address)
	if err != nil {
		return nil, err
	}

	if err := client.Do(ctx, radix.Cmd(nil, "PING")); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Provider{
		client: client,
		tracer: tracer,
		ttl:    config.TTL,
		prefix: prefix,
	}, nil
}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := p.tracer.Start(ctx, "redis.Get")
	defer span.End()

	var data []byte
	maybe := radix.Maybe{Rcv: &data}
	if err := p.client.Do(ctx, radix.Cmd(&maybe, "GET", p.prefix+key)); err != nil {
		return nil, err
	}

	if maybe.Null {
		return nil, cache.ErrNotFound
	}

	return data, nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, data []byte) error {
	ctx, span := p.tracer.Start(ctx, "redis.Set")
	defer span.End()

	args := []interface{}{p.prefix + key, data}
	if seconds := int(p.ttl.Seconds()); seconds > 0 {
		args = append(args, "EX", seconds)
	}

	return p.client.Do(ctx, radix.FlatCmd(nil, "SET", args...))
}

// Shutdown closes the connection pool
func (p *Provider) Shutdown() {
	p.client.Close()
}
