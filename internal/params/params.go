package params

import (
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode"
)

// Errors
var (
	ErrInvalidOption   = errors.New("Invalid option")
	ErrInvalidCategory = errors.New("Invalid category")
	ErrCodeTooLong     = errors.New("Code is too long")
)

const (
	maxValueLength = 64
	maxCodeLength  = 4096
)

// Params contains the page state carried in the query parameters of a request
type Params struct {
	Option   string
	Category string
	Code     string
	Edit     bool
}

// GetParams parses and validates the query parameters
func GetParams(r *http.Request) (*Params, error) {
	query := r.URL.Query()

	option := strings.TrimSpace(query.Get("option"))
	if !validValue(option) {
		return nil, ErrInvalidOption
	}

	category := strings.TrimSpace(query.Get("category"))
	if !validValue(category) {
		return nil, ErrInvalidCategory
	}

	// ?code with an empty value is still edit mode, an emptied editor
	code, edit := query["code"]
	p := &Params{
		Option:   option,
		Category: category,
		Edit:     edit,
	}

	if edit {
		p.Code = code[0]
		if len(p.Code) > maxCodeLength {
			return nil, ErrCodeTooLong
		}
	}

	return p, nil
}

// Query returns the query parameters for the state, leaving out anything unset
func (p Params) Query() url.Values {
	query := url.Values{}
	if p.Option != "" {
		query.Set("option", p.Option)
	}

	if p.Category != "" {
		query.Set("category", p.Category)
	}

	if p.Edit {
		query.Set("code", p.Code)
	}

	return query
}

// Encode returns the canonical query string for the state, "" for the default state.
// Keys are sorted, and an emptied editor is written as "?code" rather than "?code="
func (p Params) Encode() string {
	query := p.Query()

	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, key := range keys {
		if buf.Len() == 0 {
			buf.WriteByte('?')
		} else {
			buf.WriteByte('&')
		}

		buf.WriteString(url.QueryEscape(key))
		if value := query.Get(key); value != "" {
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(value))
		}
	}

	return buf.String()
}

// validValue checks option and category values, which are class names and category slugs
func validValue(value string) bool {
	if len(value) > maxValueLength {
		return false
	}

	for _, r := range value {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '"' || r == '<' || r == '>' {
			return false
		}
	}

	return true
}
