package site

import (
	"testing"

	"github.com/DMarby/utility-docs/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var galleryPage = &content.Page{
	Key:        "width",
	Title:      "Width",
	Prefix:     "w-",
	Utilities:  []content.UtilityItem{{Class: "w-full", Description: "width: 100%;"}},
	Categories: []string{"layout", "typography"},
	Examples: []content.Example{
		{Title: "Sidebar", Code: `<aside class="w-64"></aside>`, Category: "layout"},
	},
	Playground: &content.Playground{
		Title:   "Width playground",
		Options: []string{"w-16", "w-full"},
		Default: "w-full",
		Markup:  `<div class="{option}"></div>`,
		Preview: `<div class="{option}">bar</div>`,
	},
}

func TestPageViewLinks(t *testing.T) {
	view, err := newPageView(galleryPage, State{Category: "layout"}, nil)
	require.NoError(t, err)

	require.NotNil(t, view.Playground)
	assert.Equal(t, []link{
		{Label: "w-16", URL: "/width?category=layout&option=w-16"},
		{Label: "w-full", URL: "/width?category=layout&option=w-full", Selected: true},
	}, view.Playground.Links)
	assert.Equal(t, map[string]string{"option": "w-full", "category": "layout"}, view.Playground.Hidden)

	require.NotNil(t, view.Gallery)
	assert.Equal(t, []link{
		{Label: "All (1)", URL: "/width"},
		{Label: "layout (1)", URL: "/width?category=layout", Active: true},
		{Label: "typography (0)", URL: "/width?category=typography"},
	}, view.Gallery.Links)
	assert.Equal(t, "/width", view.Gallery.ResetURL)
}

func TestPageViewEmptyCategory(t *testing.T) {
	view, err := newPageView(galleryPage, State{Category: "typography"}, nil)
	require.NoError(t, err)

	assert.True(t, view.Gallery.Empty)
	assert.Empty(t, view.Gallery.Cards)
	assert.Equal(t, "/width", view.Gallery.ResetURL)
}

func TestPageViewEditing(t *testing.T) {
	view, err := newPageView(galleryPage, State{Option: "w-16", Code: "<p>custom</p>", Edit: true}, nil)
	require.NoError(t, err)

	playground := view.Playground
	assert.True(t, playground.Editing)
	assert.Equal(t, "<p>custom</p>", playground.Code)
	assert.Equal(t, `<div class="w-16">bar</div>`, string(playground.Preview))
	assert.Equal(t, "/width?option=w-16", playground.ResetURL)

	// Switching options keeps the edit
	assert.Equal(t, "/width?code=%3Cp%3Ecustom%3C%2Fp%3E&option=w-full", playground.Links[1].URL)
}

func TestPageViewCategoryWithoutExamples(t *testing.T) {
	page := *galleryPage
	page.Examples = nil

	for _, category := range []string{"layout", "all", "typography"} {
		_, err := newPageView(&page, State{Category: category}, nil)
		assert.ErrorIs(t, err, ErrUnknownCategory, category)
	}

	view, err := newPageView(&page, State{}, nil)
	require.NoError(t, err)
	assert.Nil(t, view.Gallery)
}
