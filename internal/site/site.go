// Package site renders the pages of the documentation site.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/DMarby/utility-docs/internal/tracing"
	"github.com/DMarby/utility-docs/internal/ui"
)

// Errors
var (
	ErrUnknownCategory = errors.New("unknown example category")
)

const layoutTemplate = "layout"

// Templates rendered into the layout
const (
	indexTemplate    = "index"
	pageTemplate     = "page"
	notFoundTemplate = "notfound"
)

// State is the user facing state of a page, carried in its query parameters
type State struct {
	Option   string
	Category string
	Code     string
	Edit     bool
}

// Renderer renders utility pages from a content provider
type Renderer struct {
	Content content.Provider
	Tracer  *tracing.Tracer
	Log     *logger.Logger

	// Marker flags copied values in the rendered page, nil when rendering for the browser
	Marker ui.CopyMarker

	templates map[string]*template.Template
}

// New parses the templates in fsys and returns a Renderer
func New(contentProvider content.Provider, tracer *tracing.Tracer, log *logger.Logger, fsys fs.FS) (*Renderer, error) {
	templates := make(map[string]*template.Template)
	for _, name := range []string{indexTemplate, pageTemplate, notFoundTemplate} {
		t, err := template.ParseFS(fsys, layoutTemplate+".html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", name, err)
		}

		templates[name] = t
	}

	return &Renderer{
		Content:   contentProvider,
		Tracer:    tracer,
		Log:       log,
		templates: templates,
	}, nil
}

// Index renders the list of utility pages
func (r *Renderer) Index(ctx context.Context) ([]byte, error) {
	ctx, span := r.Tracer.Start(ctx, "site.Renderer.Index")
	defer span.End()

	pages, err := r.Content.List(ctx)
	if err != nil {
		return nil, err
	}

	return r.render(ctx, indexTemplate, newIndexView(pages))
}

// Page renders a utility page in the given state
// Returns content.ErrNotFound for unknown pages, ui.ErrUnknownOption and ErrUnknownCategory for invalid state
func (r *Renderer) Page(ctx context.Context, key string, state State) ([]byte, error) {
	ctx, span := r.Tracer.Start(ctx, "site.Renderer.Page")
	defer span.End()

	page, err := r.Content.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	view, err := newPageView(page, state, r.Marker)
	if err != nil {
		return nil, err
	}

	return r.render(ctx, pageTemplate, view)
}

// NotFound renders the placeholder for a page that doesn't exist
func (r *Renderer) NotFound(ctx context.Context, key string) ([]byte, error) {
	ctx, span := r.Tracer.Start(ctx, "site.Renderer.NotFound")
	defer span.End()

	return r.render(ctx, notFoundTemplate, notFoundView{base: newBase(), Key: key})
}

func (r *Renderer) render(ctx context.Context, name string, data interface{}) ([]byte, error) {
	_, span := r.Tracer.Start(ctx, "site.Renderer.render")
	defer span.End()

	var buf bytes.Buffer
	if err := r.templates[name].ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return nil, fmt.Errorf("error rendering %s: %w", name, err)
	}

	return Minify(htmlMediaType, buf.Bytes())
}
