// Package render turns field definitions into HTML input controls and turns
// submitted form values back into typed answers.
//
// Every [models.FieldType] has exactly one [Renderer] in the registry. A type
// without a renderer is a programming error caught by the package tests, and
// a field whose type is unknown never reaches this package because decoding
// rejects it first.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"github.com/MKhiriev/go-collab-forms/models"
)

var (
	// ErrNoRenderer is returned when a field type has no registered renderer.
	ErrNoRenderer = errors.New("no renderer for field type")

	// ErrInvalidNumber is returned when a number field receives text that
	// does not parse as a finite number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidOption is returned when a select field receives a value that
	// is not one of its options.
	ErrInvalidOption = errors.New("value is not one of the options")
)

// Renderer handles one field type.
type Renderer interface {
	// Initial returns the answer a fresh fill starts with.
	Initial() any

	// Control renders the input element for field showing value.
	Control(field models.FieldDefinition, value any) (template.HTML, error)

	// Parse converts the submitted values for field into an answer.
	Parse(field models.FieldDefinition, raw []string) (any, error)
}

var renderers = map[models.FieldType]Renderer{
	models.FieldText:     textRenderer{control: "text"},
	models.FieldTextarea: textRenderer{control: "textarea"},
	models.FieldNumber:   numberRenderer{},
	models.FieldSelect:   selectRenderer{},
	models.FieldCheckbox: checkboxRenderer{},
}

// For returns the renderer registered for t.
func For(t models.FieldType) (Renderer, error) {
	r, ok := renderers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoRenderer, string(t))
	}
	return r, nil
}

var fieldTemplate = template.Must(template.New("field").Parse(
	`<div class="field field-{{.Type}}">` +
		`<label for="{{.ID}}">{{.Label}}{{if .Required}} <span class="required">*</span>{{end}}</label>` +
		`{{.Control}}` +
		`</div>`))

// Field renders the labelled block for field: the label, a required marker
// when the field is required, and the input control showing value.
func Field(field models.FieldDefinition, value any) (template.HTML, error) {
	r, err := For(field.Type)
	if err != nil {
		return "", err
	}

	control, err := r.Control(field, value)
	if err != nil {
		return "", fmt.Errorf("render control %q: %w", field.ID, err)
	}

	var buf bytes.Buffer
	err = fieldTemplate.Execute(&buf, struct {
		models.FieldDefinition
		Control template.HTML
	}{field, control})
	if err != nil {
		return "", fmt.Errorf("render field %q: %w", field.ID, err)
	}

	return template.HTML(buf.String()), nil
}

// InitialAnswers returns the starting answer for every field, keyed by id.
func InitialAnswers(fields models.Fields) (models.Answers, error) {
	answers := make(models.Answers, len(fields))
	for _, f := range fields {
		r, err := For(f.Type)
		if err != nil {
			return nil, err
		}
		answers[f.ID] = r.Initial()
	}
	return answers, nil
}

// ParseAnswers converts submitted form values into answers for fields.
// Values keyed by anything other than a field id are ignored.
//
// Parsing does not stop at a bad field: the returned answers always cover
// every field, holding the raw submitted text where parsing failed, and the
// error joins one entry per failed field prefixed with its label.
func ParseAnswers(fields models.Fields, values url.Values) (models.Answers, error) {
	answers := make(models.Answers, len(fields))
	var errs []error
	for _, f := range fields {
		r, err := For(f.Type)
		if err != nil {
			return nil, err
		}

		v, err := r.Parse(f, values[f.ID])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Label, err))
			answers[f.ID] = first(values[f.ID])
			continue
		}
		answers[f.ID] = v
	}
	return answers, errors.Join(errs...)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := controls.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func first(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	return raw[0]
}
