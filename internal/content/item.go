package content

import (
	"encoding/json"
	"strings"

	"github.com/rgonek/content-indexer/internal/fs"
)

// Projection field names with special meaning. Any other name is copied
// from the document's frontmatter when present.
const (
	FieldSlug    = "slug"
	FieldContent = "content"
	FieldTitle   = fs.KeyTitle
	FieldWeight  = fs.KeyWeight
	FieldDate    = fs.KeyDate
)

// Item is a document projected onto the fields a caller asked for. Fields
// that were requested but missing from the document are simply absent.
type Item struct {
	fields map[string]fs.Value
	names  []string
	// sortKey is the normalized date, kept even when date is not projected.
	sortKey string
}

// Project builds an Item for the document named slug. The computed slug and
// the body take precedence over frontmatter keys named "slug" or "content".
// A projected date is normalized with NormalizeDate.
func Project(slug string, doc fs.Document, fields []string) Item {
	item := Item{fields: make(map[string]fs.Value, len(fields))}
	if date, ok := doc.Metadata.Lookup(FieldDate); ok {
		item.sortKey = NormalizeDate(date)
	}

	for _, field := range fields {
		if _, done := item.fields[field]; done {
			continue
		}
		switch field {
		case FieldSlug:
			item.set(field, fs.StringValue(slug))
		case FieldContent:
			item.set(field, fs.StringValue(doc.Body))
		case FieldDate:
			if _, ok := doc.Metadata.Lookup(FieldDate); ok {
				item.set(field, fs.StringValue(item.sortKey))
			}
		default:
			if value, ok := doc.Metadata.Lookup(field); ok {
				item.set(field, value)
			}
		}
	}
	return item
}

func (i *Item) set(name string, value fs.Value) {
	i.fields[name] = value
	i.names = append(i.names, name)
}

// Field returns a projected field.
func (i Item) Field(name string) (fs.Value, bool) {
	v, ok := i.fields[name]
	return v, ok
}

// Has reports whether name was projected.
func (i Item) Has(name string) bool {
	_, ok := i.fields[name]
	return ok
}

// Fields lists projected field names in request order.
func (i Item) Fields() []string {
	return append([]string(nil), i.names...)
}

func (i Item) text(name string) string {
	v, ok := i.fields[name]
	if !ok {
		return ""
	}
	return v.Text()
}

func (i Item) Slug() string { return i.text(FieldSlug) }

func (i Item) Title() string { return i.text(FieldTitle) }

func (i Item) Content() string { return i.text(FieldContent) }

// Date returns the normalized date, projected or not.
func (i Item) Date() string { return i.sortKey }

// Weight returns the projected weight, or zero.
func (i Item) Weight() int {
	weight, _ := i.fields[FieldWeight].Int()
	return weight
}

func (i Item) MarshalJSON() ([]byte, error) {
	if i.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(i.fields)
}

func (i Item) MarshalYAML() (any, error) {
	out := make(map[string]any, len(i.fields))
	for name, value := range i.fields {
		out[name] = value.Native()
	}
	return out, nil
}

func (i Item) String() string {
	parts := make([]string, 0, len(i.names))
	for _, name := range i.names {
		parts = append(parts, name+"="+i.fields[name].Text())
	}
	return "{" + strings.Join(parts, " ") + "}"
}
