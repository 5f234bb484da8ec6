package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/handler"
	"github.com/gorilla/mux"
)

const (
	// Default number of items per page
	defaultLimit = 30
	// Max number of items per page
	maxLimit = 100
)

// ListPage is a page in the page list
type ListPage struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// PageInfo is a page with everything it documents
type PageInfo struct {
	*content.Page
	URL string `json:"url"`
}

// Returns everything about a page
func (a *API) pageInfoHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	key := mux.Vars(r)["key"]
	page, err := a.Content.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return &handler.Error{Message: err.Error(), Code: http.StatusNotFound}
		}

		a.logError(r, "error getting page from content provider", err)
		return handler.InternalServerError()
	}

	w.Header().Set("Content-Type", "application/json")
	noCacheHeaders(w)

	if err := json.NewEncoder(w).Encode(PageInfo{Page: page, URL: a.RootURL + page.Path()}); err != nil {
		a.logError(r, "error encoding page", err)
		return handler.InternalServerError()
	}

	return nil
}

// Paginated list, with `page` and `limit` query parameters
func (a *API) listHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	limit := getLimit(r)
	page := getPage(r)

	pages, err := a.Content.List(r.Context())
	if err != nil {
		a.logError(r, "error listing pages", err)
		return handler.InternalServerError()
	}

	offset := limit * (page - 1)
	list := []ListPage{}
	for i := offset; i < len(pages) && i < offset+limit; i++ {
		list = append(list, ListPage{
			Key:         pages[i].Key,
			Title:       pages[i].Title,
			Description: pages[i].Description,
			URL:         a.RootURL + pages[i].Path(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	noCacheHeaders(w)

	if link := a.getLinkHeader(page, limit, offset+limit >= len(pages)); link != "" {
		w.Header().Set("Link", link)
	}

	if err := json.NewEncoder(w).Encode(list); err != nil {
		a.logError(r, "error encoding page list", err)
		return handler.InternalServerError()
	}

	return nil
}

func getLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return limit
}

func getPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return page
}

// getLinkHeader returns no header when everything fits on a single page
func (a *API) getLinkHeader(page, limit int, end bool) string {
	prev := fmt.Sprintf("<%s/api/v1/pages?page=%d&limit=%d>; rel=\"prev\"", a.RootURL, page-1, limit)
	next := fmt.Sprintf("<%s/api/v1/pages?page=%d&limit=%d>; rel=\"next\"", a.RootURL, page+1, limit)

	switch {
	case page == 1 && end:
		return ""
	case page == 1:
		return next
	case end:
		return prev
	}

	return prev + ", " + next
}
