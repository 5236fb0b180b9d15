package view

import (
	"context"
	"errors"
	"html/template"
	"net/url"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/render"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/models"
)

// FormFill is the state of the fill page for one form.
type FormFill struct {
	forms       service.FormService
	auth        service.AuthService
	submissions service.SubmissionService

	Form    models.Form
	Answers models.Answers

	// Err is shown above the form. It is set by Bind and Submit.
	Err error

	Loaded bool
}

func NewFormFill(forms service.FormService, auth service.AuthService, submissions service.SubmissionService) *FormFill {
	return &FormFill{forms: forms, auth: auth, submissions: submissions}
}

// Load fetches the form and starts every answer at its initial value.
func (f *FormFill) Load(ctx context.Context, formID string) error {
	form, err := f.forms.GetForm(ctx, formID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("form_id", formID).Msg("fill page failed to load form")
		return err
	}

	answers, err := render.InitialAnswers(form.Fields)
	if err != nil {
		return err
	}

	f.Form = form
	f.Answers = answers
	f.Loaded = true
	return nil
}

// Bind takes the submitted values as the new answers. Fields that fail to
// parse keep the raw text so the page shows what the user typed.
func (f *FormFill) Bind(values url.Values) error {
	answers, err := render.ParseAnswers(f.Form.Fields, values)
	if answers != nil {
		f.Answers = answers
	}
	f.Err = err
	return err
}

// Submit stores the answers as one submission of the signed-in user.
// Without a principal nothing is stored and Err becomes
// service.ErrNotAuthenticated. No retries.
func (f *FormFill) Submit(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if f.Err != nil {
		return f.Err
	}

	principal, err := f.auth.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, service.ErrNotAuthenticated) {
			log.Err(err).Str("form_id", f.Form.ID).Msg("resolving user failed")
		}
		f.Err = service.ErrNotAuthenticated
		return f.Err
	}

	err = f.submissions.Submit(ctx, models.Submission{
		FormID: f.Form.ID,
		UserID: principal.ID,
		Data:   f.Answers,
	})
	if err != nil {
		f.Err = err
		return err
	}

	return nil
}

// Controls renders every field with its current answer, in form order.
func (f *FormFill) Controls() ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(f.Form.Fields))
	for _, field := range f.Form.Fields {
		html, err := render.Field(field, f.Answers[field.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, html)
	}
	return out, nil
}

// Message is the text shown above the form, or "" when there is none.
func (f *FormFill) Message() string {
	switch {
	case f.Err == nil:
		return ""
	case errors.Is(f.Err, service.ErrNotAuthenticated):
		return "You must be signed in to submit this form."
	case errors.Is(f.Err, render.ErrInvalidNumber), errors.Is(f.Err, render.ErrInvalidOption):
		return f.Err.Error()
	}
	return "Submission failed: " + f.Err.Error()
}
