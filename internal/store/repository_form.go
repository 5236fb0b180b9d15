package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/models"
)

// formRepository is the SQL implementation of [FormRepository] over the
// "forms" table. The field list lives in one JSON column and is only ever
// replaced as a whole.
type formRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFormRepository constructs a [FormRepository] backed by db.
func NewFormRepository(db *DB, logger *logger.Logger) FormRepository {
	logger.Debug().Msg("creating form repository")
	return &formRepository{
		db:     db,
		logger: logger,
	}
}

func (r *formRepository) ListForms(ctx context.Context) ([]models.Form, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildListFormsQuery()
	if err != nil {
		log.Err(err).Str("func", "*formRepository.ListForms").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.ListForms").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	forms := make([]models.Form, 0)
	for rows.Next() {
		var f models.Form
		err = rows.Scan(&f.ID, &f.Title, &f.Fields, &f.CreatedAt, &f.CreatedBy, &f.Version)
		if errors.Is(err, models.ErrUnknownFieldType) {
			log.Warn().Err(err).Str("func", "*formRepository.ListForms").Str("form_id", f.ID).Msg("skipping form with unknown field type")
			continue
		}
		if err != nil {
			log.Err(err).Str("func", "*formRepository.ListForms").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		forms = append(forms, f)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*formRepository.ListForms").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return forms, nil
}

func (r *formRepository) GetForm(ctx context.Context, id string) (models.Form, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildGetFormQuery(id)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.GetForm").Msg("error building query")
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var f models.Form
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&f.ID, &f.Title, &f.Fields, &f.CreatedAt, &f.CreatedBy, &f.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Form{}, ErrFormNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*formRepository.GetForm").Str("form_id", id).Msg("error scanning row")
		return models.Form{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return f, nil
}

func (r *formRepository) CreateForm(ctx context.Context, form models.Form) (models.Form, error) {
	log := logger.FromContext(ctx)

	form.Version = 1
	if form.Fields == nil {
		form.Fields = models.Fields{}
	}

	query, args, err := r.db.buildInsertFormQuery(form)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.CreateForm").Msg("error building query")
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*formRepository.CreateForm").Msg("error inserting form")
		if r.db.classify(err) == UniqueViolation {
			return models.Form{}, ErrFormAlreadyExists
		}
		return models.Form{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return form, nil
}

func (r *formRepository) UpdateFields(ctx context.Context, id string, fields models.Fields, expectedVersion int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildUpdateFieldsQuery(id, fields, expectedVersion)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.UpdateFields").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*formRepository.UpdateFields").Msg("error updating fields")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 1 {
		return expectedVersion + 1, nil
	}

	// nothing matched: either the form is gone or its version moved on
	return 0, r.explainMissedUpdate(ctx, id, expectedVersion)
}

func (r *formRepository) explainMissedUpdate(ctx context.Context, id string, expectedVersion int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildGetFormVersionQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stored int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFormNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Warn().Str("func", "*formRepository.UpdateFields").
		Str("form_id", id).
		Int64("expected_version", expectedVersion).
		Int64("stored_version", stored).
		Msg("stale field list update rejected")

	return fmt.Errorf("%w: expected version %d, stored %d", ErrVersionConflict, expectedVersion, stored)
}
