package api

import (
	"encoding/xml"
	"net/http"

	"github.com/DMarby/utility-docs/internal/handler"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Lists the index and every page under the root url
func (a *API) sitemapHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	pages, err := a.Content.List(r.Context())
	if err != nil {
		a.logError(r, "error listing pages", err)
		return handler.InternalServerError()
	}

	s := sitemap{
		Xmlns: sitemapNamespace,
		URLs:  []sitemapURL{{Loc: a.RootURL + "/"}},
	}

	for i := range pages {
		s.URLs = append(s.URLs, sitemapURL{Loc: a.RootURL + pages[i].Path()})
	}

	w.Header().Set("Content-Type", "application/xml")
	cacheHeaders(w, pageMaxAge)

	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(s); err != nil {
		a.logError(r, "error encoding sitemap", err)
		return handler.InternalServerError()
	}

	return nil
}
