package site

import (
	"context"
	"fmt"

	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/DMarby/utility-docs/internal/queue"
	"golang.org/x/sync/errgroup"
)

// Warm renders the default state of the given pages through the queue
// Every page is attempted, the first error is returned
func Warm(ctx context.Context, q *queue.Queue, log *logger.Logger, keys []string) error {
	var g errgroup.Group
	for _, key := range keys {
		key := key
		g.Go(func() error {
			if _, err := q.Process(ctx, key); err != nil {
				log.Warnw("error warming page",
					"page", key,
					"error", err,
				)
				return fmt.Errorf("error warming %s: %w", key, err)
			}

			log.Debugw("warmed page", "page", key)
			return nil
		})
	}

	return g.Wait()
}
