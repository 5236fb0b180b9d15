package models

import "time"

// Form is a named, ordered list of field definitions that respondents fill.
type Form struct {
	// ID is the unique identifier of the form (UUID).
	ID string `json:"id" yaml:"id"`

	// Title is the display name of the form.
	Title string `json:"title" yaml:"title"`

	// Fields is the ordered list of inputs.
	Fields Fields `json:"fields" yaml:"fields"`

	// CreatedAt is set once when the form is stored.
	CreatedAt time.Time `json:"created_at" yaml:"-"`

	// CreatedBy is the identifier of the user who created the form.
	CreatedBy string `json:"created_by" yaml:"created_by"`

	// Version is the optimistic-locking counter. Every successful field-list
	// write increments it by one; a write carrying a stale version is
	// rejected instead of silently overwriting a concurrent edit.
	Version int64 `json:"version" yaml:"-"`
}

// TableName returns the name of the database table
// associated with the Form model.
func (f Form) TableName() string {
	return "forms"
}
