package validators

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-collab-forms/models"
)

// Field name constants restrict Validate to a subset of checks.
const (
	FieldID       = "id"
	FieldTitle    = "title"
	FieldFields   = "fields"
	FieldLabel    = "label"
	FieldType     = "type"
	FieldOptions  = "options"
	FieldLogin    = "login"
	FieldPassword = "password"
	FieldFormID   = "form_id"
	FieldUserID   = "user_id"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// FormValidator implements [Validator] for forms, field definitions, field
// drafts, credentials and submissions.
type FormValidator struct {
}

// NewFormValidator constructs a new FormValidator and returns it as the
// Validator interface.
func NewFormValidator() Validator {
	return &FormValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms of each supported model are accepted.
//
// Supported types:
//   - models.Form / *models.Form
//   - models.FieldDefinition / *models.FieldDefinition
//   - models.FieldDraft / *models.FieldDraft
//   - models.Credentials / *models.Credentials
//   - models.Submission / *models.Submission
//
// Returns ErrUnsupportedType for anything else.
func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Form:
		return v.validateForm(ctx, value, fields...)
	case *models.Form:
		return v.validateForm(ctx, *value, fields...)

	case models.FieldDefinition:
		return v.validateFieldDefinition(ctx, value, fields...)
	case *models.FieldDefinition:
		return v.validateFieldDefinition(ctx, *value, fields...)

	case models.FieldDraft:
		return v.validateFieldDraft(ctx, value, fields...)
	case *models.FieldDraft:
		return v.validateFieldDraft(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.Submission:
		return v.validateSubmission(ctx, value, fields...)
	case *models.Submission:
		return v.validateSubmission(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateForm checks id, title and every field definition.
// Field ids must be unique within the form.
func (v *FormValidator) validateForm(ctx context.Context, form models.Form, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTitle, FieldFields}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(form.ID) == "" {
				return ErrEmptyID
			}
		case FieldTitle:
			if strings.TrimSpace(form.Title) == "" {
				return ErrEmptyTitle
			}
			if err := PlainText(form.Title); err != nil {
				return err
			}
		case FieldFields:
			if err := v.validateFieldList(ctx, form.Fields); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FormValidator) validateFieldList(ctx context.Context, list models.Fields) error {
	seen := make(map[string]struct{}, len(list))
	for i, fd := range list {
		if err := v.validateFieldDefinition(ctx, fd); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
		if _, dup := seen[fd.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateFieldID, fd.ID)
		}
		seen[fd.ID] = struct{}{}
	}
	return nil
}

func (v *FormValidator) validateFieldDefinition(_ context.Context, fd models.FieldDefinition, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldType, FieldLabel, FieldOptions}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(fd.ID) == "" {
				return ErrEmptyID
			}
		case FieldType:
			if !fd.Type.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidFieldType, string(fd.Type))
			}
		case FieldLabel:
			if strings.TrimSpace(fd.Label) == "" {
				return ErrEmptyLabel
			}
		case FieldOptions:
			if err := validateOptions(fd); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateOptions allows options only on select fields and rejects blank
// or repeated entries.
func validateOptions(fd models.FieldDefinition) error {
	if fd.Type != models.FieldSelect {
		if len(fd.Options) > 0 {
			return fmt.Errorf("%w: %s field carries options", ErrInvalidOptions, fd.Type)
		}
		return nil
	}

	for i, o := range fd.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("%w: option %d is blank", ErrInvalidOptions, i)
		}
		if slices.Index(fd.Options, o) != i {
			return fmt.Errorf("%w: %q repeats", ErrInvalidOptions, o)
		}
	}
	return nil
}

func (v *FormValidator) validateFieldDraft(_ context.Context, d models.FieldDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldLabel}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			if !d.Type.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidFieldType, string(d.Type))
			}
		case FieldLabel:
			if strings.TrimSpace(d.Label) == "" {
				return ErrEmptyLabel
			}
			if err := PlainText(d.Label); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FormValidator) validateCredentials(_ context.Context, c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if strings.TrimSpace(c.Login) == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
			if len(c.Password) > maxPasswordBytes {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSubmission checks the ownership columns. Answer shapes are
// checked separately by ValidateAnswers, which needs the form.
func (v *FormValidator) validateSubmission(_ context.Context, s models.Submission, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFormID, FieldUserID}
	}

	for _, f := range fields {
		switch f {
		case FieldFormID:
			if strings.TrimSpace(s.FormID) == "" {
				return ErrEmptyFormID
			}
		case FieldUserID:
			if strings.TrimSpace(s.UserID) == "" {
				return ErrEmptyUserID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateAnswers reports whether answers has the right shape for form:
// strings for text, textarea and select, a float64 or nil for number, a bool
// for checkbox. Answers keyed by unknown ids are rejected.
func ValidateAnswers(form models.Form, answers models.Answers) error {
	for id, value := range answers {
		i := form.Fields.Index(id)
		if i < 0 {
			return fmt.Errorf("%w: no field %q", ErrInvalidAnswerType, id)
		}

		ok := false
		switch form.Fields[i].Type {
		case models.FieldText, models.FieldTextarea, models.FieldSelect:
			_, ok = value.(string)
		case models.FieldNumber:
			_, isNum := value.(float64)
			ok = isNum || value == nil
		case models.FieldCheckbox:
			_, ok = value.(bool)
		}
		if !ok {
			return fmt.Errorf("%w: field %q got %T", ErrInvalidAnswerType, id, value)
		}
	}
	return nil
}
