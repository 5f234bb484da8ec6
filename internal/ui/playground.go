package ui

import (
	"errors"
	"html/template"
)

// ErrUnknownOption is returned when selecting an option the playground doesn't offer
var ErrUnknownOption = errors.New("unknown playground option")

// Control is a selectable playground option
type Control struct {
	Option   string
	Selected bool
}

// OptionPlayground lets the user pick one of a list of options and derives markup and preview from it
type OptionPlayground struct {
	options []string
	build   func(option string) string
	preview func(option string) template.HTML

	selected string
	edited   string
	editing  bool
}

// NewOptionPlayground returns a playground with the default option selected
// An empty default selects the first option
func NewOptionPlayground(options []string, defaultOption string, build func(option string) string, preview func(option string) template.HTML) (*OptionPlayground, error) {
	if len(options) == 0 {
		return nil, errors.New("playground has no options")
	}

	p := &OptionPlayground{
		options: options,
		build:   build,
		preview: preview,
	}

	if defaultOption == "" {
		defaultOption = options[0]
	}

	if err := p.Select(defaultOption); err != nil {
		return nil, err
	}

	return p, nil
}

// Select changes the selected option
// An edited code override stays in place until Reset
func (p *OptionPlayground) Select(option string) error {
	for _, o := range p.options {
		if o == option {
			p.selected = option
			return nil
		}
	}

	return ErrUnknownOption
}

// Selected returns the selected option
func (p *OptionPlayground) Selected() string {
	return p.selected
}

// Edit replaces the generated markup with code
func (p *OptionPlayground) Edit(code string) {
	p.edited = code
	p.editing = true
}

// Editing reports whether the markup is overridden by edited code
func (p *OptionPlayground) Editing() bool {
	return p.editing
}

// Reset drops edited code, going back to the generated markup
func (p *OptionPlayground) Reset() {
	p.edited = ""
	p.editing = false
}

// Code returns the edited code if editing, otherwise the markup for the selected option
func (p *OptionPlayground) Code() string {
	if p.editing {
		return p.edited
	}

	return p.build(p.selected)
}

// PreviewHTML returns the live preview for the selected option
func (p *OptionPlayground) PreviewHTML() template.HTML {
	return p.preview(p.selected)
}

// Controls returns the options with the selected one marked
func (p *OptionPlayground) Controls() []Control {
	controls := make([]Control, 0, len(p.options))
	for _, option := range p.options {
		controls = append(controls, Control{
			Option:   option,
			Selected: option == p.selected,
		})
	}

	return controls
}

// ShellView is the two-pane playground layout, controls on the left and preview plus code on the right
type ShellView struct {
	Title       string
	Description string
	Controls    []Control
	Preview     template.HTML
	Code        string
	CodeHTML    template.HTML
	Editing     bool
	Copied      bool
}

// Shell lays out externally supplied controls, a preview and the generated code
func Shell(title, description string, controls []Control, preview template.HTML, code string, marker CopyMarker) ShellView {
	return ShellView{
		Title:       title,
		Description: description,
		Controls:    controls,
		Preview:     preview,
		Code:        code,
		CodeHTML:    Highlight(code),
		Copied:      isCopied(marker, code),
	}
}

// View returns the shell for the playground's current state
func (p *OptionPlayground) View(title, description string, marker CopyMarker) ShellView {
	view := Shell(title, description, p.Controls(), p.PreviewHTML(), p.Code(), marker)
	view.Editing = p.editing
	return view
}
