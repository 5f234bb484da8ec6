package ui

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in markdown is not rendered, goldmark's default
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown renders markdown to HTML, falling back to escaped text
func Markdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}

	return template.HTML(buf.String())
}
