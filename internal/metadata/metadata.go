// Package metadata recovers the page settings of a document from its front matter.
//
// The front matter has no schema. It is lexed as markdown blocks and walked once:
// "key: value" paragraphs become scalars, a paragraph directly followed by a list
// names a list field whose items are the list's entries.
package metadata

// IncludesKey is the list field naming the fragments appended to the body.
const IncludesKey = "includes"

// LanguageTabsKey is the list field naming the code-sample tabs, in display order.
const LanguageTabsKey = "language_tabs"

type field struct {
	scalar string
	list   []string
	isList bool
}

// Metadata maps field names to scalar strings or ordered string lists.
// Keys are unique and remember the order they were first declared in.
// The zero value is ready to use.
type Metadata struct {
	order  []string
	fields map[string]*field
}

// New returns an empty Metadata.
func New() *Metadata {
	return &Metadata{fields: make(map[string]*field)}
}

func (m *Metadata) slot(key string) *field {
	if m.fields == nil {
		m.fields = make(map[string]*field)
	}
	f, ok := m.fields[key]
	if !ok {
		f = &field{}
		m.fields[key] = f
		m.order = append(m.order, key)
	}
	return f
}

// Set stores a scalar value, replacing any previous value of key.
func (m *Metadata) Set(key, value string) {
	f := m.slot(key)
	*f = field{scalar: value}
}

// SetList declares key as an empty list, replacing any previous value.
func (m *Metadata) SetList(key string) {
	f := m.slot(key)
	*f = field{list: []string{}, isList: true}
}

// Append adds item to the list key. A missing or scalar key becomes a list first.
func (m *Metadata) Append(key, item string) {
	f := m.slot(key)
	if !f.isList {
		*f = field{list: []string{}, isList: true}
	}
	f.list = append(f.list, item)
}

// Scalar returns the scalar value of key; ok is false if key is absent or a list.
func (m *Metadata) Scalar(key string) (value string, ok bool) {
	f, found := m.fields[key]
	if !found || f.isList {
		return "", false
	}
	return f.scalar, true
}

// List returns a copy of the list value of key; ok is false if key is absent or a scalar.
func (m *Metadata) List(key string) (items []string, ok bool) {
	f, found := m.fields[key]
	if !found || !f.isList {
		return nil, false
	}
	return append([]string(nil), f.list...), true
}

// Includes returns the declared include names, nil when there are none.
func (m *Metadata) Includes() []string {
	items, _ := m.List(IncludesKey)
	if len(items) == 0 {
		return nil
	}
	return items
}

// Keys returns field names in declaration order.
func (m *Metadata) Keys() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of fields.
func (m *Metadata) Len() int {
	return len(m.order)
}

// Map returns a flat copy for template data: scalars as string, lists as []string.
func (m *Metadata) Map() map[string]any {
	out := make(map[string]any, len(m.order))
	for _, key := range m.order {
		f := m.fields[key]
		if f.isList {
			out[key] = append([]string{}, f.list...)
			continue
		}
		out[key] = f.scalar
	}
	return out
}
