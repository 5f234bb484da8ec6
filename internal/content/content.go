// Package content holds the catalog of utility pages and the registry they are loaded into.
package content

import (
	"context"
	"errors"
	"strings"
)

// Placeholder is replaced with the selected option in playground markup and preview templates
const Placeholder = "{option}"

// UtilityItem is a single utility class and what it does
type UtilityItem struct {
	Class       string `json:"class" yaml:"class" validate:"required"`
	Description string `json:"description" yaml:"description" validate:"required"`
}

// AllCategories is the gallery filter showing every example, so no category may use the name
const AllCategories = "all"

// Example is a real-world usage example
type Example struct {
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description"`
	Code        string `json:"code" yaml:"code" validate:"required"`
	Preview     string `json:"preview,omitempty" yaml:"preview"`
	Category    string `json:"category,omitempty" yaml:"category" validate:"omitempty,ne=all"`
	Difficulty  string `json:"difficulty,omitempty" yaml:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// Mistake is a common mistake made with a utility
type Mistake struct {
	Title    string `json:"title" yaml:"title" validate:"required"`
	Reason   string `json:"reason" yaml:"reason" validate:"required"`
	Example  string `json:"example" yaml:"example"`
	Severity string `json:"severity,omitempty" yaml:"severity" validate:"omitempty,oneof=low medium high"`
}

// Tip is a short piece of advice, Body is markdown
type Tip struct {
	Lead string `json:"lead" yaml:"lead" validate:"required"`
	Body string `json:"body" yaml:"body" validate:"required"`
}

// Comparison is a static table comparing utilities
type Comparison struct {
	Title   string     `json:"title,omitempty" yaml:"title"`
	Headers []string   `json:"headers" yaml:"headers" validate:"required,min=2,dive,required"`
	Rows    [][]string `json:"rows" yaml:"rows" validate:"required,min=1"`
}

// Playground describes the interactive option playground of a page
type Playground struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Options     []string `json:"options" yaml:"options" validate:"required,min=1,unique,dive,required"`
	Default     string   `json:"default" yaml:"default" validate:"required"`
	Markup      string   `json:"markup" yaml:"markup" validate:"required"`
	Preview     string   `json:"preview" yaml:"preview" validate:"required"`
}

// Build returns the markup for an option
func (p *Playground) Build(option string) string {
	return strings.ReplaceAll(p.Markup, Placeholder, option)
}

// RenderPreview returns the preview HTML for an option
func (p *Playground) RenderPreview(option string) string {
	return strings.ReplaceAll(p.Preview, Placeholder, option)
}

// Page is everything that is documented about a utility category
type Page struct {
	Key         string        `json:"key" yaml:"key" validate:"required,page_key"`
	Title       string        `json:"title" yaml:"title" validate:"required"`
	Description string        `json:"description" yaml:"description" validate:"required"`
	Prefix      string        `json:"prefix,omitempty" yaml:"prefix"`
	Utilities   []UtilityItem `json:"utilities" yaml:"utilities" validate:"required,min=1,unique=Class,dive"`
	Playground  *Playground   `json:"playground,omitempty" yaml:"playground" validate:"omitempty"`
	Examples    []Example     `json:"examples,omitempty" yaml:"examples" validate:"dive"`
	Categories  []string      `json:"categories,omitempty" yaml:"categories" validate:"unique,dive,required,ne=all"`
	Mistakes    []Mistake     `json:"mistakes,omitempty" yaml:"mistakes" validate:"dive"`
	Tips        []Tip         `json:"tips,omitempty" yaml:"tips" validate:"dive"`
	Comparison  *Comparison   `json:"comparison,omitempty" yaml:"comparison" validate:"omitempty"`
}

// Path returns the URL path of the page
func (p *Page) Path() string {
	return "/" + p.Key
}

// Clone returns a deep copy of the page
func (p *Page) Clone() *Page {
	c := *p
	c.Utilities = append([]UtilityItem(nil), p.Utilities...)
	c.Examples = append([]Example(nil), p.Examples...)
	c.Categories = append([]string(nil), p.Categories...)
	c.Mistakes = append([]Mistake(nil), p.Mistakes...)
	c.Tips = append([]Tip(nil), p.Tips...)

	if p.Playground != nil {
		playground := *p.Playground
		playground.Options = append([]string(nil), p.Playground.Options...)
		c.Playground = &playground
	}

	if p.Comparison != nil {
		comparison := *p.Comparison
		comparison.Headers = append([]string(nil), p.Comparison.Headers...)
		comparison.Rows = make([][]string, len(p.Comparison.Rows))
		for i, row := range p.Comparison.Rows {
			comparison.Rows[i] = append([]string(nil), row...)
		}
		c.Comparison = &comparison
	}

	return &c
}

// Provider is an interface for looking up utility pages
type Provider interface {
	Get(ctx context.Context, key string) (*Page, error)
	List(ctx context.Context) ([]Page, error)
	Shutdown()
}

// Errors
var (
	ErrNotFound = errors.New("page does not exist")
)
