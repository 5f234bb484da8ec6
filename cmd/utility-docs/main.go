package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/DMarby/utility-docs/internal/api"
	"github.com/DMarby/utility-docs/internal/cache"
	"github.com/DMarby/utility-docs/internal/cache/memory"
	"github.com/DMarby/utility-docs/internal/cache/redis"
	"github.com/DMarby/utility-docs/internal/cmd"
	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/content/builtin"
	"github.com/DMarby/utility-docs/internal/health"
	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/DMarby/utility-docs/internal/metrics"
	"github.com/DMarby/utility-docs/internal/queue"
	"github.com/DMarby/utility-docs/internal/site"
	"github.com/DMarby/utility-docs/internal/storage"
	fileStorage "github.com/DMarby/utility-docs/internal/storage/file"
	"github.com/DMarby/utility-docs/internal/storage/spaces"
	"github.com/DMarby/utility-docs/internal/tracing"
	"github.com/DMarby/utility-docs/internal/web"

	"github.com/jamiealquiza/envy"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

const serviceName = "utility-docs"

// Comandline flags
var (
	// Global
	listen        = flag.String("listen", ":8080", "listen address")
	metricsListen = flag.String("metrics-listen", "127.0.0.1:8082", "metrics listen address")
	rootURL       = flag.String("root-url", "http://localhost:8080", "root url, used for absolute links")
	loglevel      = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")

	// Tracing
	tracingEnabled     = flag.Bool("tracing", false, "export traces over OTLP/gRPC, configured with the OTEL_EXPORTER_OTLP_* environment variables")
	tracingSampleRatio = flag.Float64("tracing-sample-ratio", 1, "share of requests to trace, between 0 and 1")

	// Content
	contentBackend = flag.String("content", "builtin", "which content backend to use (builtin, file, spaces)")

	// Content - File
	contentFilePath = flag.String("content-file-path", "./test/fixtures/content", "path to the content documents")

	// Content - Spaces
	contentSpacesSpace          = flag.String("content-spaces-space", "", "digitalocean space to use")
	contentSpacesPrefix         = flag.String("content-spaces-prefix", "", "prefix of the content documents in the space")
	contentSpacesEndpoint       = flag.String("content-spaces-endpoint", "", "spaces endpoint, e.g. https://ams3.digitaloceanspaces.com")
	contentSpacesAccessKey      = flag.String("content-spaces-access-key", "", "spaces access key")
	contentSpacesSecretKey      = flag.String("content-spaces-secret-key", "", "spaces secret key")
	contentSpacesForcePathStyle = flag.Bool("content-spaces-force-path-style", false, "use path style bucket addressing, for s3 compatible stores like minio")
	contentLoadTimeout          = flag.Duration("content-load-timeout", 30*time.Second, "time to wait for the content to load before giving up")

	// Cache
	cacheBackend = flag.String("cache", "memory", "which cache backend to use (memory, redis)")

	// Cache - Memory
	cacheMemoryMaxEntries = flag.Int("cache-memory-max-entries", 10000, "maximum number of rendered objects kept in memory, 0 for no limit")

	// Cache - Redis
	cacheRedisAddress  = flag.String("cache-redis-address", "redis://127.0.0.1:6379", "redis address, may contain authentication details")
	cacheRedisPoolSize = flag.Int("cache-redis-pool-size", 10, "redis connection pool size")
	cacheRedisTTL      = flag.Duration("cache-redis-ttl", time.Hour, "how long rendered pages are kept in redis")
	cacheRedisPrefix   = flag.String("cache-redis-prefix", redis.DefaultPrefix, "prefix for the keys of rendered pages")

	// Warmup
	warmWorkers = flag.Int("warm-workers", 2, "number of workers rendering pages into the cache at startup, 0 to disable")
)

func main() {
	// Parse environment variables
	envy.Parse("UTILITYDOCS")

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel)
	defer log.Sync()

	// Set GOMAXPROCS
	maxprocs.Set(maxprocs.Logger(log.Infof))

	// Set up context for shutting down
	shutdownCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	// Initialize tracing
	tracer := tracing.Noop(log, serviceName)
	if *tracingEnabled {
		var err error
		tracer, err = tracing.New(shutdownCtx, log, serviceName, *tracingSampleRatio)
		if err != nil {
			log.Fatalf("error initializing tracing: %s", err)
		}
	}
	defer tracer.Shutdown(context.Background())

	// Initialize the content and cache
	contentProvider, cacheProvider, err := setupBackends(shutdownCtx, log, tracer)
	if err != nil {
		log.Fatalf("error initializing backends: %s", err)
	}
	defer contentProvider.Shutdown()
	defer cacheProvider.Shutdown()

	// Initialize and start the health checker
	checkerCtx, checkerCancel := context.WithCancel(context.Background())
	defer checkerCancel()

	checker := &health.Checker{
		Ctx:     checkerCtx,
		Content: contentProvider,
		Cache:   cacheProvider,
		Log:     log,
	}
	go checker.Run()

	// Start the metrics http server
	go metrics.Serve(shutdownCtx, log, checker, *metricsListen)

	renderer, err := site.New(contentProvider, tracer, log, web.Templates())
	if err != nil {
		log.Fatalf("error initializing renderer: %s", err)
	}

	// Start and listen on http
	api := &api.API{
		Content:        contentProvider,
		Renderer:       renderer,
		Cache:          &cache.Auto{Tracer: tracer, Provider: cacheProvider},
		HealthChecker:  checker,
		Log:            log,
		Tracer:         tracer,
		RootURL:        *rootURL,
		HandlerTimeout: cmd.HandlerTimeout,
	}
	server := &http.Server{
		Addr:         *listen,
		Handler:      api.Router(),
		ReadTimeout:  cmd.ReadTimeout,
		WriteTimeout: cmd.WriteTimeout,
		IdleTimeout:  cmd.IdleTimeout,
		ErrorLog:     logger.NewHTTPErrorLog(log.Named("http")),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil {
			log.Infof("shutting down the http server: %s", err)
			shutdown()
		}
	}()

	log.Infof("http server listening on %s", *listen)

	// Render every page into the cache in the background
	if *warmWorkers > 0 {
		go warm(shutdownCtx, log.Named("warm"), api, contentProvider)
	}

	// Wait for shutdown or error
	err = cmd.WaitForInterrupt(shutdownCtx)
	log.Infof("shutting down: %s", err)

	// Shut down http server
	serverCtx, serverCancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
	defer serverCancel()
	if err := server.Shutdown(serverCtx); err != nil {
		log.Warnf("error shutting down: %s", err)
	}
}

func warm(ctx context.Context, log *logger.Logger, docs *api.API, contentProvider content.Provider) {
	pages, err := contentProvider.List(ctx)
	if err != nil {
		log.Errorf("error listing pages to warm: %s", err)
		return
	}

	keys := make([]string, 0, len(pages))
	for _, page := range pages {
		keys = append(keys, page.Key)
	}

	warmCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerQueue := queue.New(warmCtx, *warmWorkers, docs.WarmPage)
	go workerQueue.Run()

	start := time.Now()
	if err := site.Warm(warmCtx, workerQueue, log, keys); err != nil {
		log.Warnf("error warming the cache: %s", err)
		return
	}

	log.Infof("warmed %d pages in %s", len(keys), time.Since(start))
}

func setupBackends(ctx context.Context, log *logger.Logger, tracer *tracing.Tracer) (contentProvider content.Provider, cacheProvider cache.Provider, err error) {
	loadCtx, cancel := context.WithTimeout(ctx, *contentLoadTimeout)
	defer cancel()

	// Content
	var store storage.Provider
	switch *contentBackend {
	case "builtin":
		store, err = builtin.Storage()
	case "file":
		store, err = fileStorage.New(*contentFilePath)
	case "spaces":
		store, err = spaces.New(loadCtx, spaces.Config{
			Space:          *contentSpacesSpace,
			Prefix:         *contentSpacesPrefix,
			Endpoint:       *contentSpacesEndpoint,
			AccessKey:      *contentSpacesAccessKey,
			SecretKey:      *contentSpacesSecretKey,
			ForcePathStyle: *contentSpacesForcePathStyle,
		})
	default:
		err = fmt.Errorf("invalid content backend")
	}

	if err != nil {
		return
	}

	// Broken pages render as not found instead of taking the site down
	contentProvider, err = content.New(loadCtx, store, content.SkipInvalid(log.Named("content")))
	if err != nil {
		return
	}

	// Cache
	switch *cacheBackend {
	case "memory":
		cacheProvider = memory.New(memory.MaxEntries(*cacheMemoryMaxEntries))
	case "redis":
		cacheProvider, err = redis.New(ctx, tracer, redis.Config{
			Address:  *cacheRedisAddress,
			PoolSize: *cacheRedisPoolSize,
			TTL:      *cacheRedisTTL,
			Prefix:   *cacheRedisPrefix,
		})
	default:
		err = fmt.Errorf("invalid cache backend")
	}

	return
}
