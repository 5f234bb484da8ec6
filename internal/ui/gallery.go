package ui

import (
	"fmt"
	"html/template"

	"github.com/DMarby/utility-docs/internal/content"
)

// AllCategories is the category filter that shows every example
const AllCategories = content.AllCategories

// Gallery is a list of examples that can be filtered by category
type Gallery struct {
	Examples   []content.Example
	Categories []string // Derived from the examples when empty
}

// CategoryButton is a category filter with the number of examples in it
type CategoryButton struct {
	Category string
	Label    string
	Count    int
	Active   bool
}

// ExampleCard is a single example in the gallery
type ExampleCard struct {
	content.Example
	CodeHTML    template.HTML
	PreviewHTML template.HTML
	Copied      bool
}

// GalleryView is the filtered gallery
type GalleryView struct {
	Active  string
	Buttons []CategoryButton
	Cards   []ExampleCard
	Total   int
	Empty   bool
}

// DerivedCategories returns the explicit categories, or the categories of the examples in order of first appearance
func (g Gallery) DerivedCategories() []string {
	if len(g.Categories) > 0 {
		return g.Categories
	}

	seen := make(map[string]struct{})
	categories := []string{}
	for _, example := range g.Examples {
		if example.Category == "" {
			continue
		}

		if _, exists := seen[example.Category]; exists {
			continue
		}

		seen[example.Category] = struct{}{}
		categories = append(categories, example.Category)
	}

	return categories
}

// Filter returns the examples in the given category, or all of them for AllCategories
func (g Gallery) Filter(active string) []content.Example {
	active = normalizeCategory(active)
	if active == AllCategories {
		return g.Examples
	}

	examples := []content.Example{}
	for _, example := range g.Examples {
		if example.Category == active {
			examples = append(examples, example)
		}
	}

	return examples
}

// Buttons returns the filter buttons, starting with AllCategories
func (g Gallery) Buttons(active string) []CategoryButton {
	active = normalizeCategory(active)
	categories := g.DerivedCategories()

	buttons := make([]CategoryButton, 0, len(categories)+1)
	buttons = append(buttons, CategoryButton{
		Category: AllCategories,
		Label:    fmt.Sprintf("All (%d)", len(g.Examples)),
		Count:    len(g.Examples),
		Active:   active == AllCategories,
	})

	for _, category := range categories {
		count := len(g.Filter(category))
		buttons = append(buttons, CategoryButton{
			Category: category,
			Label:    fmt.Sprintf("%s (%d)", category, count),
			Count:    count,
			Active:   active == category,
		})
	}

	return buttons
}

// View returns the gallery filtered by the active category
func (g Gallery) View(active string, marker CopyMarker) GalleryView {
	active = normalizeCategory(active)
	examples := g.Filter(active)

	cards := make([]ExampleCard, 0, len(examples))
	for _, example := range examples {
		cards = append(cards, ExampleCard{
			Example:     example,
			CodeHTML:    Highlight(example.Code),
			PreviewHTML: template.HTML(example.Preview), // Catalog content is trusted
			Copied:      isCopied(marker, example.Code),
		})
	}

	return GalleryView{
		Active:  active,
		Buttons: g.Buttons(active),
		Cards:   cards,
		Total:   len(g.Examples),
		Empty:   len(cards) == 0,
	}
}

func normalizeCategory(category string) string {
	if category == "" {
		return AllCategories
	}

	return category
}
