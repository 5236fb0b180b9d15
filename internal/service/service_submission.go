package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/metrics"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/internal/validators"
	"github.com/MKhiriev/go-collab-forms/models"
)

type submissionService struct {
	submissions store.SubmissionRepository
	validator   validators.Validator
	ids         *utils.UUIDGenerator
	now         func() time.Time

	logger *logger.Logger
}

func NewSubmissionService(submissions store.SubmissionRepository, logger *logger.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		validator:   validators.NewFormValidator(),
		ids:         utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
	}
}

// Submit inserts exactly one submission. There are no retries; a failed
// insert is reported to the caller as is.
func (s *submissionService) Submit(ctx context.Context, submission models.Submission) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, submission); err != nil {
		log.Error().Err(err).Msg("invalid submission provided")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if submission.ID == "" {
		submission.ID = s.ids.Generate()
	}
	submission.CreatedAt = s.now()
	if submission.Data == nil {
		submission.Data = models.Answers{}
	}

	if err := s.submissions.InsertSubmission(ctx, submission); err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		log.Err(err).
			Str("form_id", submission.FormID).
			Str("user_id", submission.UserID).
			Msg("submission insert failed")
		return fmt.Errorf("submission insert failed: %w", err)
	}

	metrics.Submissions.WithLabelValues(metrics.OutcomeOK).Inc()
	log.Info().Str("form_id", submission.FormID).Str("submission_id", submission.ID).Msg("submission stored")
	return nil
}
