package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DMarby/utility-docs/internal/handler"
	"github.com/gorilla/mux"
)

func errorHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	return handler.BadRequest("Invalid option")
}

func TestHandler(t *testing.T) {
	tests := []struct {
		Name                string
		Accept              string
		ExpectedContentType string
		ExpectedBody        string
	}{
		{"plain text error", "", "text/plain; charset=utf-8", "Invalid option\n"},
		{"json error", "application/json", "application/json", "{\"error\":\"Invalid option\"}\n"},
		{"json error with multiple media types", "application/json, text/plain", "application/json", "{\"error\":\"Invalid option\"}\n"},
	}

	for _, test := range tests {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/cursor?option=nope", nil)
		if test.Accept != "" {
			req.Header.Set("Accept", test.Accept)
		}

		handler.Handler(errorHandler).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: wrong response code, %#v", test.Name, w.Code)
		}

		if contentType := w.Header().Get("Content-Type"); contentType != test.ExpectedContentType {
			t.Errorf("%s: wrong content type %#v", test.Name, contentType)
		}

		if w.Body.String() != test.ExpectedBody {
			t.Errorf("%s: wrong body %#v", test.Name, w.Body.String())
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := handler.AddRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.GetReqID(r.Context())
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	h.ServeHTTP(w, req)

	if len(seen) != 24 {
		t.Errorf("wrong generated request id %#v", seen)
	}

	if w.Header().Get(handler.RequestIDHeader) != seen {
		t.Errorf("request id not echoed, %#v", w.Header().Get(handler.RequestIDHeader))
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/", nil)
	req.Header.Set(handler.RequestIDHeader, "upstream-id")
	h.ServeHTTP(w, req)

	if seen != "upstream-id" {
		t.Errorf("incoming request id not reused, %#v", seen)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/", nil)
	req.Header.Set(handler.RequestIDHeader, strings.Repeat("a", 65))
	h.ServeHTTP(w, req)

	if len(seen) != 24 {
		t.Errorf("oversized request id was reused, %#v", seen)
	}
}

func TestMuxRouteMatcher(t *testing.T) {
	router := mux.NewRouter()
	router.Handle("/", http.NotFoundHandler()).Name("index")
	router.Handle("/{key}", http.NotFoundHandler())
	router.NotFoundHandler = http.NotFoundHandler()

	matcher := &handler.MuxRouteMatcher{Router: router}

	tests := []struct {
		URL      string
		Expected string
	}{
		{"/", "index"},
		{"/cursor", "/{key}"},
		{"/cursor/nested/path", handler.UnmatchedRoute},
	}

	for _, test := range tests {
		req, _ := http.NewRequest("GET", test.URL, nil)
		if route := matcher.Match(req); route != test.Expected {
			t.Errorf("%s: wrong route %#v", test.URL, route)
		}
	}
}

func TestMetrics(t *testing.T) {
	router := mux.NewRouter()
	router.Handle("/{key}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h := handler.Metrics(router, &handler.MuxRouteMatcher{Router: router})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/cursor", nil)
	h.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("wrong response code, %#v", w.Code)
	}
}

func TestCORS(t *testing.T) {
	h := handler.CORS([]string{"Link"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/pages", nil)
	req.Header.Set("Origin", "https://example.com")
	h.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("wrong allow origin header %#v", w.Header().Get("Access-Control-Allow-Origin"))
	}

	if w.Header().Get("Access-Control-Expose-Headers") != "Link" {
		t.Errorf("wrong expose headers header %#v", w.Header().Get("Access-Control-Expose-Headers"))
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("OPTIONS", "/api/v1/pages", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	h.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Methods") != "" {
		t.Errorf("POST preflight should not be allowed, %#v", w.Header().Get("Access-Control-Allow-Methods"))
	}
}
