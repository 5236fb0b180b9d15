package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/internal/validators"
	"github.com/MKhiriev/go-collab-forms/models"
)

// ErrNotSelectField is returned when options are set on a field that is
// not a select.
var ErrNotSelectField = errors.New("field is not a select")

// FormEditor is the state of the admin editor for one form.
type FormEditor struct {
	forms     service.FormService
	validator validators.Validator

	// Form mirrors the stored form after the last successful Load or write.
	Form models.Form

	// Draft holds the add-field controls.
	Draft models.FieldDraft

	// Loaded is false until Load succeeds.
	Loaded bool
}

func NewFormEditor(forms service.FormService) *FormEditor {
	return &FormEditor{
		forms:     forms,
		validator: validators.NewFormValidator(),
		Draft:     models.DefaultFieldDraft(),
	}
}

// Load fetches the form. On failure the editor stays unloaded.
func (e *FormEditor) Load(ctx context.Context, formID string) error {
	form, err := e.forms.GetForm(ctx, formID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("form_id", formID).Msg("editor failed to load form")
		return err
	}

	e.Form = form
	e.Loaded = true
	return nil
}

// ExpectVersion makes the next write conditional on version instead of the
// loaded one. Pages send back the version they were rendered with, so a
// write from a stale page is detected as a conflict.
func (e *FormEditor) ExpectVersion(version int64) {
	if version > 0 {
		e.Form.Version = version
	}
}

// Fields returns the field list in display order.
func (e *FormEditor) Fields() models.Fields {
	return e.Form.Fields
}

// AddField appends a field built from draft under a fresh id and stores the
// whole list. The draft is reset only when the write succeeds.
func (e *FormEditor) AddField(ctx context.Context, draft models.FieldDraft) error {
	draft.Label = strings.TrimSpace(draft.Label)
	if err := e.validator.Validate(ctx, draft); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("form_id", e.Form.ID).Msg("invalid field draft")
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
	}

	field := draft.Definition(e.forms.NewFieldID(e.Form.Fields))
	if err := e.replace(ctx, e.Form.Fields.Append(field)); err != nil {
		e.Draft = draft
		return err
	}

	e.Draft = models.DefaultFieldDraft()
	return nil
}

// RemoveField stores the list without fieldID. The write happens even when
// no field carries that id.
func (e *FormEditor) RemoveField(ctx context.Context, fieldID string) error {
	return e.replace(ctx, e.Form.Fields.Without(fieldID))
}

// SetFieldOptions replaces the options of a select field. Blank entries are
// dropped, surrounding space is trimmed and repeats keep their first
// position.
func (e *FormEditor) SetFieldOptions(ctx context.Context, fieldID string, options []string) error {
	i := e.Form.Fields.Index(fieldID)
	if i >= 0 && e.Form.Fields[i].Type != models.FieldSelect {
		logger.FromContext(ctx).Error().Str("form_id", e.Form.ID).Str("field_id", fieldID).Msg("options set on non-select field")
		return fmt.Errorf("%w: %q", ErrNotSelectField, fieldID)
	}

	options = cleanOptions(options)
	for _, o := range options {
		if err := validators.PlainText(o); err != nil {
			logger.FromContext(ctx).Error().Err(err).Str("form_id", e.Form.ID).Str("field_id", fieldID).Msg("invalid option")
			return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
		}
	}

	updated, ok := e.Form.Fields.WithOptions(fieldID, options)
	if !ok {
		logger.FromContext(ctx).Error().Str("form_id", e.Form.ID).Str("field_id", fieldID).Msg("options set on missing field")
		return fmt.Errorf("no field %q in form %q", fieldID, e.Form.ID)
	}
	return e.replace(ctx, updated)
}

// replace persists fields and mirrors them into the editor on success.
// Failures are logged and leave the editor untouched.
func (e *FormEditor) replace(ctx context.Context, fields models.Fields) error {
	version, err := e.forms.ReplaceFields(ctx, e.Form.ID, fields, e.Form.Version)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("form_id", e.Form.ID).
			Int64("version", e.Form.Version).
			Msg("field list update failed")
		return err
	}

	e.Form.Fields = fields
	e.Form.Version = version
	return nil
}

func cleanOptions(options []string) []string {
	out := make([]string, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
