package pubsection

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// object is a decoded JSON object together with its location in the document,
// so every schema error can name the exact key that failed.
type object struct {
	path   string
	fields map[string]any
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

// kindOf names a decoded JSON value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func invalid(path, want string, v any) error {
	return fmt.Errorf("%w: %s: expected %s, got %s", ErrInvalidField, path, want, kindOf(v))
}

func asObject(path string, v any) (object, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return object{}, invalid(path, "object", v)
	}
	return object{path: path, fields: m}, nil
}

func (o object) required(key string) (any, error) {
	v, ok := o.fields[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, childPath(o.path, key))
	}
	return v, nil
}

// optional reports a field as absent when the key is missing or null.
func (o object) optional(key string) (any, bool) {
	v, ok := o.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (o object) str(key string) (string, error) {
	v, err := o.required(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(childPath(o.path, key), "string", v)
	}
	return s, nil
}

func (o object) optStr(key string) (string, error) {
	v, ok := o.optional(key)
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(childPath(o.path, key), "string", v)
	}
	return s, nil
}

func (o object) optBool(key string) (bool, error) {
	v, ok := o.optional(key)
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, invalid(childPath(o.path, key), "boolean", v)
	}
	return b, nil
}

// integer accepts whole JSON numbers, integral floats such as 300.0, and
// decimal strings such as "300".
func (o object) integer(key string) (int, error) {
	v, err := o.required(key)
	if err != nil {
		return 0, err
	}
	path := childPath(o.path, key)

	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(n.String(), 10, 0); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %s: %s is not an integer", ErrInvalidField, path, n)
		}
		return int(f), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrInvalidField, path, n)
		}
		return i, nil
	default:
		return 0, invalid(path, "integer", v)
	}
}

func (o object) list(key string) ([]any, string, error) {
	v, err := o.required(key)
	if err != nil {
		return nil, "", err
	}
	path := childPath(o.path, key)
	items, ok := v.([]any)
	if !ok {
		return nil, "", invalid(path, "array", v)
	}
	return items, path, nil
}

func (o object) obj(key string) (object, error) {
	v, err := o.required(key)
	if err != nil {
		return object{}, err
	}
	return asObject(childPath(o.path, key), v)
}

// decodeSet validates a decoded JSON tree and builds the typed record.
// Decoding stops at the first problem.
func decodeSet(root any) (*PublicationSet, error) {
	top, err := asObject("", root)
	if err != nil {
		return nil, fmt.Errorf("%w: document root: expected object, got %s", ErrInvalidField, kindOf(root))
	}

	title, err := top.str("section_title")
	if err != nil {
		return nil, err
	}

	items, path, err := top.list("entries")
	if err != nil {
		return nil, err
	}

	set := &PublicationSet{SectionTitle: title, Entries: make([]Entry, 0, len(items))}
	for i, item := range items {
		o, err := asObject(indexPath(path, i), item)
		if err != nil {
			return nil, err
		}
		entry, err := decodeEntry(o)
		if err != nil {
			return nil, err
		}
		set.Entries = append(set.Entries, entry)
	}
	return set, nil
}

func decodeEntry(o object) (Entry, error) {
	var e Entry
	var err error

	for _, f := range []struct {
		key string
		dst *string
	}{
		{"id", &e.ID},
		{"page_url", &e.PageURL},
		{"date", &e.Date},
		{"venue_html", &e.VenueHTML},
		{"title", &e.Title},
		{"summary", &e.Summary},
	} {
		if *f.dst, err = o.str(f.key); err != nil {
			return Entry{}, err
		}
	}

	img, err := o.obj("image")
	if err != nil {
		return Entry{}, err
	}
	if e.Image, err = decodeImage(img); err != nil {
		return Entry{}, err
	}

	authors, path, err := o.list("authors")
	if err != nil {
		return Entry{}, err
	}
	for i, item := range authors {
		a, err := asObject(indexPath(path, i), item)
		if err != nil {
			return Entry{}, err
		}
		author, err := decodeAuthor(a)
		if err != nil {
			return Entry{}, err
		}
		e.Authors = append(e.Authors, author)
	}

	buttons, path, err := o.list("buttons")
	if err != nil {
		return Entry{}, err
	}
	for i, item := range buttons {
		b, err := asObject(indexPath(path, i), item)
		if err != nil {
			return Entry{}, err
		}
		button, err := decodeButton(b)
		if err != nil {
			return Entry{}, err
		}
		e.Buttons = append(e.Buttons, button)
	}

	return e, nil
}

func decodeImage(o object) (Image, error) {
	var img Image
	var err error

	if img.Src, err = o.str("src"); err != nil {
		return Image{}, err
	}
	if img.Alt, err = o.str("alt"); err != nil {
		return Image{}, err
	}
	if img.Height, err = o.integer("height"); err != nil {
		return Image{}, err
	}
	if img.Width, err = o.integer("width"); err != nil {
		return Image{}, err
	}
	if img.Style, err = o.optStr("style"); err != nil {
		return Image{}, err
	}
	return img, nil
}

func decodeAuthor(o object) (Author, error) {
	var a Author
	var err error

	if a.Name, err = o.str("name"); err != nil {
		return Author{}, err
	}
	if a.Affiliation, err = o.str("affiliation"); err != nil {
		return Author{}, err
	}
	if a.Highlighted, err = o.optBool("highlighted"); err != nil {
		return Author{}, err
	}
	return a, nil
}

// decodeButton dispatches on the "type" discriminator. A missing type means
// a link button.
func decodeButton(o object) (Button, error) {
	kind, err := o.optStr("type")
	if err != nil {
		return nil, err
	}

	label, err := o.str("label")
	if err != nil {
		return nil, err
	}

	switch kind {
	case "", ButtonTypeLink:
		href, err := o.str("href")
		if err != nil {
			return nil, err
		}
		blank, err := o.optBool("target_blank")
		if err != nil {
			return nil, err
		}
		return LinkButton{Label: label, Href: href, TargetBlank: blank}, nil
	case ButtonTypeCite:
		filename, err := o.str("filename")
		if err != nil {
			return nil, err
		}
		return CiteButton{Label: label, Filename: filename}, nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown button type %q (want %q or %q)",
			ErrInvalidField, childPath(o.path, "type"), kind, ButtonTypeLink, ButtonTypeCite)
	}
}
