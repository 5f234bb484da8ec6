package site

import (
	"fmt"
	"html/template"

	"github.com/DMarby/utility-docs/internal/clipboard"
	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/params"
	"github.com/DMarby/utility-docs/internal/ui"
)

const gridTitle = "Classes"

// base is shared by every view, it's what the layout needs
type base struct {
	ClearDelay int64
}

func newBase() base {
	return base{
		ClearDelay: clipboard.ClearDelay.Milliseconds(),
	}
}

type indexEntry struct {
	Title       string
	Description string
	Path        string
}

type indexView struct {
	base
	Pages []indexEntry
}

func newIndexView(pages []content.Page) indexView {
	entries := make([]indexEntry, 0, len(pages))
	for i := range pages {
		entries = append(entries, indexEntry{
			Title:       pages[i].Title,
			Description: pages[i].Description,
			Path:        pages[i].Path(),
		})
	}

	return indexView{base: newBase(), Pages: entries}
}

type notFoundView struct {
	base
	Key string
}

type link struct {
	Label    string
	URL      string
	Selected bool
	Active   bool
}

type playgroundView struct {
	ui.ShellView
	Links    []link
	Action   string
	Hidden   map[string]string
	ResetURL string
}

type galleryView struct {
	ui.GalleryView
	Links    []link
	ResetURL string
}

type pageView struct {
	base
	Title       string
	Description string
	Grid        ui.GridView
	Playground  *playgroundView
	Gallery     *galleryView
	Comparison  *ui.ComparisonView
	Mistakes    []ui.MistakeItem
	Tips        []ui.TipItem
}

func newPageView(page *content.Page, state State, marker ui.CopyMarker) (*pageView, error) {
	view := &pageView{
		base:        newBase(),
		Title:       page.Title,
		Description: page.Description,
		Grid:        ui.Grid(gridTitle, page.Prefix, page.Utilities, marker),
		Comparison:  ui.ComparisonTable(page.Comparison),
		Mistakes:    ui.MistakeList(page.Mistakes),
		Tips:        ui.TipList(page.Tips),
	}

	// State for sections the page doesn't have is invalid
	if page.Playground == nil && (state.Option != "" || state.Edit) {
		return nil, ui.ErrUnknownOption
	}

	if len(page.Examples) == 0 && state.Category != "" {
		return nil, ErrUnknownCategory
	}

	if page.Playground != nil {
		playground, err := newPlaygroundView(page, state, marker)
		if err != nil {
			return nil, err
		}

		view.Playground = playground
	}

	if len(page.Examples) > 0 {
		gallery, err := newGalleryView(page, state, marker)
		if err != nil {
			return nil, err
		}

		view.Gallery = gallery
	}

	return view, nil
}

func newPlaygroundView(page *content.Page, state State, marker ui.CopyMarker) (*playgroundView, error) {
	p := page.Playground
	playground, err := ui.NewOptionPlayground(p.Options, p.Default, p.Build, func(option string) template.HTML {
		return template.HTML(p.RenderPreview(option)) // Catalog content is trusted
	})
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", page.Key, err)
	}

	if state.Option != "" {
		if err := playground.Select(state.Option); err != nil {
			return nil, err
		}
	}

	if state.Edit {
		playground.Edit(state.Code)
	}

	view := &playgroundView{
		ShellView: playground.View(p.Title, p.Description, marker),
		Action:    page.Path(),
		Hidden:    map[string]string{},
	}

	for _, control := range playground.Controls() {
		// Switching options keeps edited code, only Reset drops it
		linkState := state
		linkState.Option = control.Option
		view.Links = append(view.Links, link{
			Label:    control.Option,
			URL:      stateURL(page, linkState),
			Selected: control.Selected,
		})
	}

	view.Hidden["option"] = playground.Selected()
	if state.Category != "" {
		view.Hidden["category"] = state.Category
	}

	reset := state
	reset.Option = playground.Selected()
	reset.Code = ""
	reset.Edit = false
	view.ResetURL = stateURL(page, reset)

	return view, nil
}

func newGalleryView(page *content.Page, state State, marker ui.CopyMarker) (*galleryView, error) {
	gallery := ui.Gallery{
		Examples:   page.Examples,
		Categories: page.Categories,
	}

	if !knownCategory(gallery, state.Category) {
		return nil, ErrUnknownCategory
	}

	view := &galleryView{
		GalleryView: gallery.View(state.Category, marker),
	}

	for _, button := range view.Buttons {
		linkState := state
		linkState.Category = button.Category
		if button.Category == ui.AllCategories {
			linkState.Category = ""
		}

		view.Links = append(view.Links, link{
			Label:  button.Label,
			URL:    stateURL(page, linkState),
			Active: button.Active,
		})
	}

	reset := state
	reset.Category = ""
	view.ResetURL = stateURL(page, reset)

	return view, nil
}

func knownCategory(gallery ui.Gallery, category string) bool {
	if category == "" || category == ui.AllCategories {
		return true
	}

	for _, c := range gallery.DerivedCategories() {
		if c == category {
			return true
		}
	}

	return false
}

func stateURL(page *content.Page, state State) string {
	return page.Path() + params.Params(state).Encode()
}
