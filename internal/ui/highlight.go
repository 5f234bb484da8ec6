package ui

import (
	"bytes"
	"html/template"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const highlightStyle = "github"

var (
	highlightLexer     = chroma.Coalesce(htmlLexer())
	highlightFormatter = html.New(html.WithClasses(true), html.TabWidth(2))
)

func htmlLexer() chroma.Lexer {
	if lexer := lexers.Get("html"); lexer != nil {
		return lexer
	}

	return lexers.Fallback
}

// Highlight returns syntax highlighted HTML markup, wrapped in a <pre>
func Highlight(code string) template.HTML {
	iterator, err := highlightLexer.Tokenise(nil, code)
	if err != nil {
		return plainCode(code)
	}

	var buf bytes.Buffer
	if err := highlightFormatter.Format(&buf, styles.Get(highlightStyle), iterator); err != nil {
		return plainCode(code)
	}

	return template.HTML(buf.String())
}

// WriteHighlightCSS writes the stylesheet for the highlight classes
func WriteHighlightCSS(w io.Writer) error {
	return highlightFormatter.WriteCSS(w, styles.Get(highlightStyle))
}

func plainCode(code string) template.HTML {
	return template.HTML("<pre class=\"chroma\"><code>" + template.HTMLEscapeString(code) + "</code></pre>")
}
