package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/models"
)

type submissionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSubmissionRepository constructs a [SubmissionRepository] backed by db.
func NewSubmissionRepository(db *DB, logger *logger.Logger) SubmissionRepository {
	logger.Debug().Msg("creating submission repository")
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *submissionRepository) InsertSubmission(ctx context.Context, submission models.Submission) error {
	log := logger.FromContext(ctx)

	if submission.Data == nil {
		submission.Data = models.Answers{}
	}

	query, args, err := r.db.buildInsertSubmissionQuery(submission)
	if err != nil {
		log.Err(err).Str("func", "*submissionRepository.InsertSubmission").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*submissionRepository.InsertSubmission").
			Str("form_id", submission.FormID).
			Msg("error inserting submission")
		if r.db.classify(err) == ForeignKeyViolation {
			return ErrFormNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
