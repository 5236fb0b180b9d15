package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// Fields is the ordered field list of a form. Display order is list order.
//
// Fields is stored as a single JSON document, so it implements
// [driver.Valuer] and [sql.Scanner].
type Fields []FieldDefinition

// Index returns the position of the field with the given id, or -1.
func (fs Fields) Index(id string) int {
	return slices.IndexFunc(fs, func(f FieldDefinition) bool {
		return f.ID == id
	})
}

// Contains reports whether a field with the given id is present.
func (fs Fields) Contains(id string) bool {
	return fs.Index(id) >= 0
}

// Append returns a new list with f added at the end. The receiver is left
// untouched.
func (fs Fields) Append(f FieldDefinition) Fields {
	out := make(Fields, 0, len(fs)+1)
	out = append(out, fs...)
	return append(out, f)
}

// Without returns a new list with every field carrying the given id removed,
// preserving the relative order of the rest.
func (fs Fields) Without(id string) Fields {
	out := make(Fields, 0, len(fs))
	for _, f := range fs {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// WithOptions returns a new list in which the select field with the given id
// has its options replaced. ok is false when no such field exists.
func (fs Fields) WithOptions(id string, options []string) (Fields, bool) {
	i := fs.Index(id)
	if i < 0 {
		return fs, false
	}
	out := slices.Clone(fs)
	f := out[i]
	f.Options = slices.Clone(options)
	out[i] = f.Normalized()
	return out, true
}

// Value implements [driver.Valuer].
func (fs Fields) Value() (driver.Value, error) {
	if fs == nil {
		fs = Fields{}
	}
	b, err := json.Marshal([]FieldDefinition(fs))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements [sql.Scanner]. NULL becomes an empty list.
func (fs *Fields) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*fs = Fields{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Fields", src)
	}

	var decoded []FieldDefinition
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode fields: %w", err)
	}
	if decoded == nil {
		decoded = []FieldDefinition{}
	}
	*fs = decoded
	return nil
}
