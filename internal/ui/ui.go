// Package ui builds the view models for the generic building blocks of a
// utility page: class grids, playgrounds, example galleries and static lists.
//
// Views are plain structs, rendered by the templates in internal/web.
package ui

// CopyMarker reports whether a piece of text is the most recently copied value
type CopyMarker interface {
	IsCopied(text string) bool
}

func isCopied(marker CopyMarker, text string) bool {
	if marker == nil {
		return false
	}

	return marker.IsCopied(text)
}
