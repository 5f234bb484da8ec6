package ui

import (
	"strings"

	"github.com/DMarby/utility-docs/internal/content"
)

// GridCard is a single utility class in a grid
type GridCard struct {
	Class       string
	Display     string
	Description string
	Copied      bool
}

// GridView is a titled grid of utility classes
type GridView struct {
	Title string
	Cards []GridCard
}

// Grid returns one card per utility, displaying the class name without prefix
func Grid(title, prefix string, items []content.UtilityItem, marker CopyMarker) GridView {
	cards := make([]GridCard, 0, len(items))
	for _, item := range items {
		cards = append(cards, GridCard{
			Class:       item.Class,
			Display:     displayName(item.Class, prefix),
			Description: item.Description,
			Copied:      isCopied(marker, item.Class),
		})
	}

	return GridView{
		Title: title,
		Cards: cards,
	}
}

func displayName(class, prefix string) string {
	display := strings.TrimPrefix(class, prefix)
	if display == "" {
		return class
	}

	return display
}
