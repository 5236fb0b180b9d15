// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownFieldType is returned when a field type tag is not one of the
// closed set of supported kinds. Documents carrying such a tag are rejected
// at the decoding boundary instead of being rendered as a blank control.
var ErrUnknownFieldType = errors.New("unknown field type")

// FieldType is the kind of input control a form field renders as.
type FieldType string

const (
	// FieldText is a single-line text input. Its answer is a string.
	FieldText FieldType = "text"

	// FieldTextarea is a multi-line text input. Its answer is a string.
	FieldTextarea FieldType = "textarea"

	// FieldNumber is a numeric input. Its answer is a number or absent.
	FieldNumber FieldType = "number"

	// FieldSelect is a drop-down with a fixed list of options.
	// Its answer is one of the options or the empty string.
	FieldSelect FieldType = "select"

	// FieldCheckbox is a boolean toggle. Its answer is a bool.
	FieldCheckbox FieldType = "checkbox"
)

// FieldTypes lists every supported field type in the order the editor
// offers them.
var FieldTypes = []FieldType{FieldText, FieldTextarea, FieldNumber, FieldSelect, FieldCheckbox}

// ParseFieldType converts a textual tag into a [FieldType].
// Surrounding whitespace is ignored; matching is case-sensitive.
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFieldType, s)
	}
	return t, nil
}

// Valid reports whether t is one of [FieldTypes].
func (t FieldType) Valid() bool {
	return slices.Contains(FieldTypes, t)
}

// String implements [fmt.Stringer].
func (t FieldType) String() string {
	return string(t)
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Both encoding/json and
// yaml.v3 route through it, so unknown tags fail decoding everywhere.
func (t *FieldType) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (t FieldType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, string(t))
	}
	return []byte(t), nil
}

// FieldDefinition describes one input of a form.
//
// Options is meaningful only for [FieldSelect]; for every other type it is
// dropped when the definition is encoded.
type FieldDefinition struct {
	ID       string    `json:"id" yaml:"id"`
	Type     FieldType `json:"type" yaml:"type"`
	Label    string    `json:"label" yaml:"label"`
	Required bool      `json:"required" yaml:"required"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// fieldDefinitionJSON is the wire shape of [FieldDefinition].
// A pointer lets a select field carry an explicit empty list.
type fieldDefinitionJSON struct {
	ID       string    `json:"id"`
	Type     FieldType `json:"type"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`
	Options  *[]string `json:"options,omitempty"`
}

// MarshalJSON implements [json.Marshaler]. Select fields always carry an
// "options" array, possibly empty; other types never do.
func (f FieldDefinition) MarshalJSON() ([]byte, error) {
	wire := fieldDefinitionJSON{
		ID:       f.ID,
		Type:     f.Type,
		Label:    f.Label,
		Required: f.Required,
	}
	if f.Type == FieldSelect {
		opts := f.Options
		if opts == nil {
			opts = []string{}
		}
		wire.Options = &opts
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements [json.Unmarshaler]. Unknown types are rejected
// with [ErrUnknownFieldType].
func (f *FieldDefinition) UnmarshalJSON(data []byte) error {
	var wire fieldDefinitionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*f = FieldDefinition{
		ID:       wire.ID,
		Type:     wire.Type,
		Label:    wire.Label,
		Required: wire.Required,
	}
	if wire.Type == FieldSelect {
		f.Options = []string{}
		if wire.Options != nil {
			f.Options = *wire.Options
		}
	}
	return nil
}

// Normalized returns a copy of f whose Options obey the per-type rule:
// select fields get a non-nil slice, every other type gets nil.
func (f FieldDefinition) Normalized() FieldDefinition {
	if f.Type != FieldSelect {
		f.Options = nil
		return f
	}
	if f.Options == nil {
		f.Options = []string{}
	} else {
		f.Options = slices.Clone(f.Options)
	}
	return f
}

// FieldDraft holds the add-field controls of the editor between additions.
type FieldDraft struct {
	Type     FieldType
	Label    string
	Required bool
}

// DefaultFieldDraft is the state the add-field controls start in and
// return to after every successful addition.
func DefaultFieldDraft() FieldDraft {
	return FieldDraft{Type: FieldText}
}

// Definition turns the draft into a field with the given id.
func (d FieldDraft) Definition(id string) FieldDefinition {
	return FieldDefinition{
		ID:       id,
		Type:     d.Type,
		Label:    d.Label,
		Required: d.Required,
	}.Normalized()
}
