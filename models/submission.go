package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Answers maps field ids to answer values.
//
// Value shapes by field type:
//   - text, textarea, select: string
//   - number: float64, or nil when left empty
//   - checkbox: bool
type Answers map[string]any

// Clone returns a shallow copy of a.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Value implements [driver.Valuer].
func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		a = Answers{}
	}
	b, err := json.Marshal(map[string]any(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements [sql.Scanner].
func (a *Answers) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Answers{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Answers", src)
	}

	decoded := Answers{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode answers: %w", err)
	}
	*a = decoded
	return nil
}

// Submission is one respondent's answers to one form.
// It is created once and never changed afterwards.
type Submission struct {
	ID        string    `json:"id,omitempty"`
	FormID    string    `json:"form_id"`
	UserID    string    `json:"user_id"`
	Data      Answers   `json:"data"`
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Submission model.
func (s Submission) TableName() string {
	return "form_submissions"
}
