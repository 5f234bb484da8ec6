package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Http timeouts
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 30 * time.Second
	IdleTimeout     = 2 * time.Minute
	HandlerTimeout  = 20 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// ErrCanceled is returned by WaitForInterrupt when the context ends before a signal arrives
var ErrCanceled = errors.New("canceled")

var interruptSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// WaitForInterrupt waits for an interrupt
func WaitForInterrupt(ctx context.Context) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, interruptSignals...)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		return fmt.Errorf("received signal %s", sig)
	case <-ctx.Done():
		return ErrCanceled
	}
}

// InterruptContext returns a context that is canceled on the first interrupt
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, interruptSignals...)
}
