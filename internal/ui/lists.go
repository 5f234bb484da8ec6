package ui

import (
	"html/template"

	"github.com/DMarby/utility-docs/internal/content"
)

const defaultSeverity = "medium"

// ComparisonView is a static comparison table
type ComparisonView struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// ComparisonTable returns the view of a comparison, or nil if the page has none
func ComparisonTable(comparison *content.Comparison) *ComparisonView {
	if comparison == nil {
		return nil
	}

	return &ComparisonView{
		Title:   comparison.Title,
		Headers: comparison.Headers,
		Rows:    comparison.Rows,
	}
}

// MistakeItem is a common mistake with a highlighted example
type MistakeItem struct {
	content.Mistake
	ExampleHTML template.HTML
}

// MistakeList returns the mistakes, defaulting the severity to medium
func MistakeList(mistakes []content.Mistake) []MistakeItem {
	items := make([]MistakeItem, 0, len(mistakes))
	for _, mistake := range mistakes {
		if mistake.Severity == "" {
			mistake.Severity = defaultSeverity
		}

		item := MistakeItem{Mistake: mistake}
		if mistake.Example != "" {
			item.ExampleHTML = Highlight(mistake.Example)
		}

		items = append(items, item)
	}

	return items
}

// TipItem is a tip with its markdown body rendered
type TipItem struct {
	Lead string
	Body template.HTML
}

// TipList renders the tips
func TipList(tips []content.Tip) []TipItem {
	items := make([]TipItem, 0, len(tips))
	for _, tip := range tips {
		items = append(items, TipItem{
			Lead: tip.Lead,
			Body: Markdown(tip.Body),
		})
	}

	return items
}
