package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DMarby/utility-docs/internal/cache"
	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/logger"
)

const (
	defaultInterval = 10 * time.Second
	checkTimeout    = 8 * time.Second

	// sentinelKey is never written to the cache
	sentinelKey = "healthcheck"
)

// Component states
const (
	Healthy   = "healthy"
	Unhealthy = "unhealthy"
	Unknown   = "unknown"
)

// Checker periodically checks that the content registry has pages to serve and that the cache answers
type Checker struct {
	Ctx      context.Context
	Content  content.Provider
	Cache    cache.Provider
	Interval time.Duration // Defaults to 10 seconds
	Log      *logger.Logger

	mutex  sync.RWMutex
	status Status
}

// Status contains the healthcheck status
type Status struct {
	Healthy bool   `json:"healthy"`
	Cache   string `json:"cache,omitempty"`
	Content string `json:"content,omitempty"`
	Pages   int    `json:"pages,omitempty"`
}

// Run runs a check and then keeps checking in the background until Ctx is done
func (c *Checker) Run() {
	interval := c.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	c.runCheck()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.runCheck()
			case <-c.Ctx.Done():
				return
			}
		}
	}()
}

// Status returns the status of the last check
func (c *Checker) Status() Status {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.status
}

func (c *Checker) setStatus(status Status) {
	c.mutex.Lock()
	c.status = status
	c.mutex.Unlock()
}

func (c *Checker) runCheck() {
	ctx, cancel := context.WithTimeout(c.Ctx, checkTimeout)
	defer cancel()

	result := make(chan Status, 1)
	go func() {
		result <- c.check(ctx)
	}()

	select {
	case <-ctx.Done():
		c.setStatus(c.unknownStatus())
		c.Log.Errorw("healthcheck timed out")
	case status := <-result:
		c.setStatus(status)
		if !status.Healthy {
			c.Log.Errorw("healthcheck failed",
				"status", status,
			)
		}
	}
}

func (c *Checker) unknownStatus() Status {
	status := Status{}
	if c.Content != nil {
		status.Content = Unknown
	}
	if c.Cache != nil {
		status.Cache = Unknown
	}

	return status
}

func (c *Checker) check(ctx context.Context) Status {
	status := c.unknownStatus()
	status.Healthy = true

	if c.Content != nil {
		pages, err := c.checkContent(ctx)
		status.Content = componentState(err)
		status.Pages = pages
		if err != nil {
			status.Healthy = false
			c.Log.Debugw("content check failed", "error", err)
		}
	}

	if c.Cache != nil {
		err := c.checkCache(ctx)
		status.Cache = componentState(err)
		if err != nil {
			status.Healthy = false
			c.Log.Debugw("cache check failed", "error", err)
		}
	}

	return status
}

func (c *Checker) checkContent(ctx context.Context) (int, error) {
	pages, err := c.Content.List(ctx)
	if err != nil {
		return 0, err
	}

	if len(pages) == 0 {
		return 0, errors.New("no pages to serve")
	}

	return len(pages), nil
}

func (c *Checker) checkCache(ctx context.Context) error {
	_, err := c.Cache.Get(ctx, sentinelKey)
	switch {
	case errors.Is(err, cache.ErrNotFound):
		return nil
	case err != nil:
		return err
	default:
		return fmt.Errorf("unexpected value for %q", sentinelKey)
	}
}

func componentState(err error) string {
	if err != nil {
		return Unhealthy
	}

	return Healthy
}
