package site

import (
	"errors"
	"html/template"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Zachkp/portfolio/internal/contact"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pathescape": url.PathEscape,
		"label":      label,
		"join":       strings.Join,
		"charLimit":  func() int { return contact.MessageMaxLength },
		"dict":       dict,
	}
}

// dict builds a map from alternating keys and values so a template can
// hand several values to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// label capitalises a filter or category key for display.
func label(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
