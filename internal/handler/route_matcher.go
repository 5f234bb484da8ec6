package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// UnmatchedRoute groups requests that match no route, so random paths don't create new metric series or span names
const UnmatchedRoute = "unmatched"

// RouteMatcher names the route a request is served by
type RouteMatcher interface {
	Match(r *http.Request) string
}

// MuxRouteMatcher matches routes for a mux router
type MuxRouteMatcher struct {
	Router *mux.Router
}

// Match returns the name of the matched route, or its path template for unnamed routes
func (m *MuxRouteMatcher) Match(r *http.Request) string {
	var match mux.RouteMatch

	// A NotFoundHandler makes Match succeed without a route
	if !m.Router.Match(r, &match) || match.Route == nil {
		return UnmatchedRoute
	}

	if name := match.Route.GetName(); name != "" {
		return name
	}

	if tmpl, err := match.Route.GetPathTemplate(); err == nil {
		return tmpl
	}

	return UnmatchedRoute
}
