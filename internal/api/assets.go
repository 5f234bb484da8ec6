package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/DMarby/utility-docs/internal/handler"
	"github.com/DMarby/utility-docs/internal/site"
	"github.com/DMarby/utility-docs/internal/ui"
	"github.com/DMarby/utility-docs/internal/web"
)

const (
	assetsPrefix  = "/assets/"
	assetMaxAge   = time.Hour
	highlightCSS  = "css/highlight.css"
	assetKeyStart = "asset:"
)

// Serves the embedded assets, minified, plus the generated syntax highlighting stylesheet
func (a *API) assetHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	name := strings.TrimPrefix(r.URL.Path, assetsPrefix)
	if name == "" || !fs.ValidPath(name) {
		return notFoundError
	}

	data, err := a.Cache.GetWith(r.Context(), assetKeyStart+name, loadAsset)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFoundError
		}

		a.logError(r, "error loading asset", err)
		return handler.InternalServerError()
	}

	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	cacheHeaders(w, assetMaxAge)
	w.Header().Set("ETag", etag(data))
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	return nil
}

func loadAsset(ctx context.Context, key string) ([]byte, error) {
	name := strings.TrimPrefix(key, assetKeyStart)

	var data []byte
	if name == highlightCSS {
		var buf bytes.Buffer
		if err := ui.WriteHighlightCSS(&buf); err != nil {
			return nil, err
		}

		data = buf.Bytes()
	} else {
		var err error
		data, err = fs.ReadFile(web.Assets(), name)
		if err != nil {
			// Embedded reads only fail for missing files and directories
			return nil, fmt.Errorf("asset %s: %w", name, fs.ErrNotExist)
		}
	}

	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(path.Ext(name)))
	if err != nil {
		return data, nil
	}

	return site.Minify(mediaType, data)
}
