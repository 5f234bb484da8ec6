package cache_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DMarby/utility-docs/internal/cache"
	"github.com/DMarby/utility-docs/internal/cache/memory"
	"github.com/DMarby/utility-docs/internal/cache/mock"
	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/DMarby/utility-docs/internal/tracing/test"
	"go.uber.org/zap"
)

var mockLoaderFunc cache.LoaderFunc = func(ctx context.Context, key string) (data []byte, err error) {
	if key == "page:loaderror" {
		return nil, fmt.Errorf("load error")
	}

	return []byte("rendered " + key), nil
}

func TestAuto(t *testing.T) {
	log := logger.New(zap.ErrorLevel)
	defer log.Sync()

	auto := &cache.Auto{
		Tracer:   test.Tracer(log),
		Provider: &mock.Provider{},
		Loader:   mockLoaderFunc,
	}

	tests := []struct {
		Key           string
		ExpectedData  string
		ExpectedError string
	}{
		{"page:cursor", "cached", ""},
		{"page:missing", "rendered page:missing", ""},
		{"page:error", "", "get error"},
		{"page:loaderror", "", "load error"},
		{"page:seterror", "", "set error"},
	}

	for _, test := range tests {
		data, err := auto.Get(context.Background(), test.Key)
		if test.ExpectedError != "" {
			if err == nil || err.Error() != test.ExpectedError {
				t.Errorf("%s: wrong error: %v", test.Key, err)
			}

			continue
		}

		if err != nil {
			t.Errorf("%s: %s", test.Key, err)
			continue
		}

		if string(data) != test.ExpectedData {
			t.Errorf("%s: wrong data %q", test.Key, data)
		}
	}
}

func TestAutoLoadsOnce(t *testing.T) {
	log := logger.New(zap.ErrorLevel)
	defer log.Sync()

	var loads int32
	release := make(chan struct{})

	auto := &cache.Auto{
		Tracer:   test.Tracer(log),
		Provider: memory.New(),
		Loader: func(ctx context.Context, key string) ([]byte, error) {
			atomic.AddInt32(&loads, 1)
			<-release
			return []byte("rendered"), nil
		},
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := auto.Get(context.Background(), "page:width")
			if err != nil || string(data) != "rendered" {
				t.Errorf("wrong result %q %v", data, err)
			}
		}()
	}

	// Give the goroutines time to pile up on the loader
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	// Later lookups are served from the cache
	if _, err := auto.Get(context.Background(), "page:width"); err != nil {
		t.Fatal(err)
	}

	if n := atomic.LoadInt32(&loads); n < 1 || n > 10 {
		t.Fatalf("wrong number of loads %d", n)
	}

	before := atomic.LoadInt32(&loads)
	auto.Get(context.Background(), "page:width")
	if atomic.LoadInt32(&loads) != before {
		t.Fatal("cached page was loaded again")
	}
}

func TestAutoGetWith(t *testing.T) {
	log := logger.New(zap.ErrorLevel)
	defer log.Sync()

	auto := &cache.Auto{
		Tracer:   test.Tracer(log),
		Provider: memory.New(),
		Loader:   mockLoaderFunc,
	}

	data, err := auto.GetWith(context.Background(), "page:cursor:1234", func(ctx context.Context, key string) ([]byte, error) {
		return []byte("cursor-wait"), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "cursor-wait" {
		t.Fatalf("wrong data %q", data)
	}

	// Cached, the default loader isn't used
	data, err = auto.Get(context.Background(), "page:cursor:1234")
	if err != nil || string(data) != "cursor-wait" {
		t.Fatalf("wrong cached data %q %v", data, err)
	}
}
