package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/metrics"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/internal/validators"
	"github.com/MKhiriev/go-collab-forms/models"
)

type formService struct {
	forms     store.FormRepository
	validator validators.Validator
	ids       *utils.UUIDGenerator
	now       func() time.Time

	logger *logger.Logger
}

func NewFormService(forms store.FormRepository, logger *logger.Logger) FormService {
	return &formService{
		forms:     forms,
		validator: validators.NewFormValidator(),
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *formService) ListForms(ctx context.Context) ([]models.Form, error) {
	forms, err := s.forms.ListForms(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing forms failed")
		return nil, fmt.Errorf("listing forms failed: %w", err)
	}
	return forms, nil
}

func (s *formService) GetForm(ctx context.Context, id string) (models.Form, error) {
	form, err := s.forms.GetForm(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrFormNotFound) {
			logger.FromContext(ctx).Err(err).Str("form_id", id).Msg("loading form failed")
		}
		return models.Form{}, fmt.Errorf("loading form %q failed: %w", id, err)
	}
	return form, nil
}

// CreateForm gives the form an id when it has none and gives every field
// without an id a fresh one. CreatedBy defaults to the principal in ctx.
func (s *formService) CreateForm(ctx context.Context, form models.Form) (models.Form, error) {
	log := logger.FromContext(ctx)

	if form.ID == "" {
		form.ID = s.ids.Generate()
	}
	if form.CreatedBy == "" {
		if p, ok := utils.GetPrincipalFromContext(ctx); ok {
			form.CreatedBy = p.ID
		}
	}
	form.CreatedAt = s.now()
	form.Title = strings.TrimSpace(form.Title)
	form.Fields = trimFields(form.Fields)

	for i := range form.Fields {
		if form.Fields[i].ID == "" {
			form.Fields[i].ID = s.NewFieldID(form.Fields)
		}
	}

	if err := s.validator.Validate(ctx, form); err != nil {
		log.Error().Err(err).Str("title", form.Title).Msg("invalid form provided")
		return models.Form{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := plainFieldText(form.Fields); err != nil {
		log.Error().Err(err).Str("title", form.Title).Msg("markup in field text")
		return models.Form{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	created, err := s.forms.CreateForm(ctx, form)
	if err != nil {
		log.Err(err).Str("form_id", form.ID).Msg("form creation failed")
		return models.Form{}, fmt.Errorf("form creation failed: %w", err)
	}

	log.Info().Str("form_id", created.ID).Int("fields", len(created.Fields)).Msg("form created")
	return created, nil
}

// ReplaceFields stores fields exactly as given. Text of new fields is
// checked where it is entered; fields already stored are never rewritten.
func (s *formService) ReplaceFields(ctx context.Context, formID string, fields models.Fields, expectedVersion int64) (int64, error) {
	log := logger.FromContext(ctx)

	if fields == nil {
		fields = models.Fields{}
	}
	if err := s.validator.Validate(ctx, models.Form{Fields: fields}, validators.FieldFields); err != nil {
		log.Error().Err(err).Str("form_id", formID).Msg("invalid field list provided")
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	version, err := s.forms.UpdateFields(ctx, formID, fields, expectedVersion)
	switch {
	case errors.Is(err, store.ErrVersionConflict):
		metrics.FieldListWrites.WithLabelValues(metrics.OutcomeConflict).Inc()
		return 0, err
	case err != nil:
		metrics.FieldListWrites.WithLabelValues(metrics.OutcomeError).Inc()
		return 0, fmt.Errorf("replacing fields of form %q failed: %w", formID, err)
	}

	metrics.FieldListWrites.WithLabelValues(metrics.OutcomeOK).Inc()
	return version, nil
}

func (s *formService) NewFieldID(fields models.Fields) string {
	return s.ids.GenerateUnique(fields.Contains)
}

// trimFields trims labels and options of fields about to be created.
func trimFields(fields models.Fields) models.Fields {
	out := make(models.Fields, len(fields))
	for i, f := range fields {
		f.Label = strings.TrimSpace(f.Label)
		if f.Options != nil {
			opts := make([]string, 0, len(f.Options))
			for _, o := range f.Options {
				opts = append(opts, strings.TrimSpace(o))
			}
			f.Options = opts
		}
		out[i] = f.Normalized()
	}
	return out
}

func plainFieldText(fields models.Fields) error {
	for _, f := range fields {
		if err := validators.PlainText(f.Label); err != nil {
			return err
		}
		for _, o := range f.Options {
			if err := validators.PlainText(o); err != nil {
				return err
			}
		}
	}
	return nil
}
