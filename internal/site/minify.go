package site

import (
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

const htmlMediaType = "text/html"

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.Add(htmlMediaType, &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	return m
}

// Minify minifies html, css, svg and javascript, returning anything else as is
func Minify(mediaType string, data []byte) ([]byte, error) {
	out, err := minifier.Bytes(mediaType, data)
	if err == minify.ErrNotExist {
		return data, nil
	}

	return out, err
}
