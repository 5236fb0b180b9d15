package adapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/models"
)

const submissionsPath = "/rest/v1/form_submissions"

// submissionAdapter implements [store.SubmissionRepository] over PostgREST.
type submissionAdapter struct {
	rest *restClient
}

func (a *submissionAdapter) InsertSubmission(ctx context.Context, submission models.Submission) error {
	if submission.Data == nil {
		submission.Data = models.Answers{}
	}

	resp, err := a.rest.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetBody([]models.Submission{submission}).
		Post(submissionsPath)
	if err != nil {
		return fmt.Errorf("insert submission request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil {
		switch apiCode(err) {
		case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
			return store.ErrFormNotFound
		}
		return err
	}

	return nil
}
