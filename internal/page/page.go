// Package page composes the final page from a layout template, the document metadata
// and the rendered content.
package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ContentKey is the reserved data key holding the rendered HTML.
const ContentKey = "content"

// Sentinel errors for page composition.
var (
	ErrTemplateParse   = errors.New("template parsing failed")
	ErrTemplateExecute = errors.New("template execution failed")
)

// Funcs returns the helpers available to layouts:
//   - str wraps a value in double quotes
//   - html marks a string as trusted HTML
//   - json encodes any value as trusted JavaScript
//   - join joins a list with a separator
func Funcs() template.FuncMap {
	return template.FuncMap{
		"str":  quote,
		"html": trustHTML,
		"json": encodeJSON,
		"join": join,
	}
}

// Composer renders pages from one parsed layout. Safe for concurrent use.
type Composer struct {
	tmpl *template.Template
}

// NewComposer parses the layout source.
func NewComposer(source string) (*Composer, error) {
	tmpl, err := template.New("layout").Funcs(Funcs()).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Composer{tmpl: tmpl}, nil
}

// Compose executes the layout against a copy of meta with ContentKey set to content.
// A document field named "content" is replaced by the rendered HTML.
func (c *Composer) Compose(meta map[string]any, content string) (string, error) {
	data := make(map[string]any, len(meta)+1)
	for k, v := range meta {
		data[k] = v
	}
	data[ContentKey] = template.HTML(content)

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return buf.String(), nil
}

func quote(v any) string {
	return `"` + fmt.Sprint(v) + `"`
}

func trustHTML(v any) template.HTML {
	switch s := v.(type) {
	case template.HTML:
		return s
	case string:
		return template.HTML(s)
	case nil:
		return ""
	default:
		return template.HTML(fmt.Sprint(s))
	}
}

func encodeJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil // json.Marshal escapes <, > and &
}

func join(sep string, v any) string {
	switch list := v.(type) {
	case []string:
		return strings.Join(list, sep)
	case []any:
		parts := make([]string, len(list))
		for i, item := range list {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, sep)
	case nil:
		return ""
	default:
		return fmt.Sprint(list)
	}
}
