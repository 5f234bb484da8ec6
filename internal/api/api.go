package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DMarby/utility-docs/internal/cache"
	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/handler"
	"github.com/DMarby/utility-docs/internal/health"
	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/DMarby/utility-docs/internal/site"
	"github.com/DMarby/utility-docs/internal/tracing"
	"github.com/gorilla/mux"
)

// API is a http api
type API struct {
	Content        content.Provider
	Renderer       *site.Renderer
	Cache          *cache.Auto
	HealthChecker  *health.Checker
	Log            *logger.Logger
	Tracer         *tracing.Tracer
	RootURL        string
	HandlerTimeout time.Duration
}

// Utility methods for logging
func (a *API) logError(r *http.Request, message string, err error) {
	a.Log.Errorw(message, handler.LogFields(r, "error", err)...)
}

// Router returns a http router
func (a *API) Router() http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = handler.Handler(a.notFoundHandler)

	// Redirect trailing slashes
	router.StrictSlash(true)

	// Healthcheck
	router.Handle("/health", handler.Health(a.HealthChecker)).Methods("GET").Name("health")

	// JSON content registry, readable from any origin
	jsonRouter := router.PathPrefix("/api/v1").Subrouter()
	jsonRouter.Use(func(next http.Handler) http.Handler {
		return handler.CORS([]string{"Link"}, next)
	})
	jsonRouter.Handle("/pages", handler.Handler(a.listHandler)).Methods("GET", "OPTIONS").Name("api.pages")
	jsonRouter.Handle("/pages/{key}", handler.Handler(a.pageInfoHandler)).Methods("GET", "OPTIONS").Name("api.page")

	// Query parameters:
	// ?page={page} - What page to display
	// ?limit={limit} - How many entries to display per page

	router.Handle("/sitemap.xml", handler.Handler(a.sitemapHandler)).Methods("GET").Name("sitemap")

	// Static files
	router.PathPrefix("/assets/").Handler(handler.Handler(a.assetHandler)).Methods("GET").Name("assets")

	// Pages
	router.Handle("/", handler.Handler(a.indexHandler)).Methods("GET").Name("index")
	router.Handle("/{key}", handler.Handler(a.pageHandler)).Methods("GET").Name("page")

	// Query parameters:
	// ?option={option} - Playground option to select
	// ?code={code} - Edited playground code, until reset
	// ?category={category} - Example category to show

	routeMatcher := &handler.MuxRouteMatcher{Router: router}

	// Set up handlers for adding a request id, handling panics, request logging, tracing, metrics and handler execution timeout
	return handler.AddRequestID(
		handler.Recovery(a.Log,
			handler.Logger(a.Log,
				handler.Tracer(a.Tracer,
					handler.Metrics(
						http.TimeoutHandler(router, a.HandlerTimeout, "Something went wrong. Timed out."),
						routeMatcher,
					),
					routeMatcher,
				),
				routeMatcher,
			),
		),
	)
}

func (a *API) notFoundHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	return a.renderNotFound(w, r, r.URL.Path)
}

// Set headers for responses that can be cached by browsers and proxies
func cacheHeaders(w http.ResponseWriter, maxAge time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
}

func noCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
}
