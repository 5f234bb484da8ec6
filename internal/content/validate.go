package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	pageKeyPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Reserved page keys that collide with other routes
var reservedKeys = map[string]struct{}{
	"api":         {},
	"assets":      {},
	"health":      {},
	"sitemap.xml": {},
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("page_key", func(fl validator.FieldLevel) bool {
			key := fl.Field().String()
			if _, reserved := reservedKeys[key]; reserved {
				return false
			}
			return pageKeyPattern.MatchString(key)
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks a page for missing fields and inconsistencies
func Validate(page *Page) error {
	if page == nil {
		return errors.New("page is nil")
	}

	if err := validatorInstance().Struct(page); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("invalid page %q: %s", page.Key, describe(validationErrors))
		}

		return fmt.Errorf("invalid page %q: %w", page.Key, err)
	}

	if p := page.Playground; p != nil {
		if !contains(p.Options, p.Default) {
			return fmt.Errorf("invalid page %q: playground default %q is not one of its options", page.Key, p.Default)
		}

		if !strings.Contains(p.Markup, Placeholder) {
			return fmt.Errorf("invalid page %q: playground markup does not contain %s", page.Key, Placeholder)
		}
	}

	if c := page.Comparison; c != nil {
		for i, row := range c.Rows {
			if len(row) != len(c.Headers) {
				return fmt.Errorf("invalid page %q: comparison row %d has %d columns, expected %d", page.Key, i, len(row), len(c.Headers))
			}
		}
	}

	return nil
}

func describe(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		// Drop the root struct name, "Page.Utilities[0].Class" -> "Utilities[0].Class"
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}

		if fe.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			messages = append(messages, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}

	return strings.Join(messages, "; ")
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
