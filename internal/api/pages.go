package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/handler"
	"github.com/DMarby/utility-docs/internal/params"
	"github.com/DMarby/utility-docs/internal/site"
	"github.com/DMarby/utility-docs/internal/ui"
	"github.com/gorilla/mux"
	"github.com/twmb/murmur3"
)

const (
	pageMaxAge  = 5 * time.Minute
	htmlType    = "text/html; charset=utf-8"
	indexKey    = "page:index"
	apiPrefix   = "/api/"
	unknownPage = "page not found"
)

// Handle not found errors outside of the rendered pages
var notFoundError = &handler.Error{
	Message: unknownPage,
	Code:    http.StatusNotFound,
}

// cacheKey returns the cache key of a page in a given state
// The canonical query string of the state is hashed to keep keys short
func cacheKey(key string, state site.State) string {
	return fmt.Sprintf("page:%s:%x", key, murmur3.StringSum64(params.Params(state).Encode()))
}

func (a *API) indexHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	body, err := a.Cache.GetWith(r.Context(), indexKey, func(ctx context.Context, key string) ([]byte, error) {
		return a.Renderer.Index(ctx)
	})
	if err != nil {
		a.logError(r, "error rendering index", err)
		return handler.InternalServerError()
	}

	cacheHeaders(w, pageMaxAge)
	serveHTML(w, r, body)
	return nil
}

func (a *API) pageHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	key := mux.Vars(r)["key"]

	p, err := params.GetParams(r)
	if err != nil {
		return handler.BadRequest(err.Error())
	}

	state := site.State(*p)
	render := func(ctx context.Context, _ string) ([]byte, error) {
		return a.Renderer.Page(ctx, key, state)
	}

	var body []byte
	// Edited code is never cached
	if state.Edit {
		body, err = render(r.Context(), "")
	} else {
		body, err = a.Cache.GetWith(r.Context(), cacheKey(key, state), render)
	}

	if err != nil {
		switch {
		case errors.Is(err, content.ErrNotFound):
			return a.renderNotFound(w, r, key)
		case errors.Is(err, ui.ErrUnknownOption), errors.Is(err, site.ErrUnknownCategory):
			return handler.BadRequest(err.Error())
		}

		a.logError(r, "error rendering page", err)
		return handler.InternalServerError()
	}

	if state.Edit {
		noCacheHeaders(w)
	} else {
		cacheHeaders(w, pageMaxAge)
	}

	serveHTML(w, r, body)
	return nil
}

// WarmPage renders the default state of a page into the cache, it's the handler for the warm queue
func (a *API) WarmPage(ctx context.Context, data interface{}) (interface{}, error) {
	key, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("invalid page key %v", data)
	}

	return a.Cache.GetWith(ctx, cacheKey(key, site.State{}), func(ctx context.Context, _ string) ([]byte, error) {
		return a.Renderer.Page(ctx, key, site.State{})
	})
}

// renderNotFound renders the not found placeholder page
func (a *API) renderNotFound(w http.ResponseWriter, r *http.Request, key string) *handler.Error {
	if strings.HasPrefix(r.URL.Path, apiPrefix) {
		return notFoundError
	}

	body, err := a.Renderer.NotFound(r.Context(), strings.Trim(key, "/"))
	if err != nil {
		a.logError(r, "error rendering not found page", err)
		return notFoundError
	}

	noCacheHeaders(w)
	w.Header().Set("Content-Type", htmlType)
	w.WriteHeader(http.StatusNotFound)
	w.Write(body)
	return nil
}

// serveHTML writes a rendered page with an ETag, answering conditional requests with 304 Not Modified
func serveHTML(w http.ResponseWriter, r *http.Request, body []byte) {
	w.Header().Set("Content-Type", htmlType)
	w.Header().Set("ETag", etag(body))
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(body))
}

func etag(body []byte) string {
	return fmt.Sprintf("\"%x\"", murmur3.Sum64(body))
}
