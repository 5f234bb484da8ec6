package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/DMarby/utility-docs/internal/cache"
	"github.com/tilinna/clock"
)

// Option configures a Provider
type Option func(*Provider)

// MaxEntries bounds the number of cached objects, evicting the least recently used first
func MaxEntries(n int) Option {
	return func(p *Provider) {
		p.maxEntries = n
	}
}

// TTL expires objects after the given duration
func TTL(ttl time.Duration) Option {
	return func(p *Provider) {
		p.ttl = ttl
	}
}

// Clock sets the clock used for expiry
func Clock(c clock.Clock) Option {
	return func(p *Provider) {
		p.clock = c
	}
}

type entry struct {
	key     string
	data    []byte
	expires time.Time
}

// Provider implements an in-memory cache, unbounded and without expiry unless configured
type Provider struct {
	maxEntries int
	ttl        time.Duration
	clock      clock.Clock

	mutex   sync.Mutex
	entries map[string]*list.Element
	order   *list.List // Front is the most recently used
}

// New returns a new Provider instance
func New(opts ...Option) *Provider {
	p := &Provider{
		clock:   clock.Realtime(),
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Get returns an object from the cache if it exists and hasn't expired
func (p *Provider) Get(ctx context.Context, key string) (data []byte, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	element, exists := p.entries[key]
	if !exists {
		return nil, cache.ErrNotFound
	}

	e := element.Value.(*entry)
	if !e.expires.IsZero() && !p.clock.Now().Before(e.expires) {
		p.remove(element)
		return nil, cache.ErrNotFound
	}

	p.order.MoveToFront(element)
	return e.data, nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, data []byte) (err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	var expires time.Time
	if p.ttl > 0 {
		expires = p.clock.Now().Add(p.ttl)
	}

	if element, exists := p.entries[key]; exists {
		e := element.Value.(*entry)
		e.data = data
		e.expires = expires
		p.order.MoveToFront(element)
		return nil
	}

	p.entries[key] = p.order.PushFront(&entry{key, data, expires})

	if p.maxEntries > 0 {
		for p.order.Len() > p.maxEntries {
			p.remove(p.order.Back())
		}
	}

	return nil
}

func (p *Provider) remove(element *list.Element) {
	p.order.Remove(element)
	delete(p.entries, element.Value.(*entry).key)
}

// Len returns the number of cached objects, including expired ones not yet evicted
func (p *Provider) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.order.Len()
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {}
