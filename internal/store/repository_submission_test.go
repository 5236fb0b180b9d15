package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/models"
)

func TestInsertSubmission_Success(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := &submissionRepository{db: db, logger: logger.Nop()}

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO form_submissions (id,form_id,user_id,data,created_at) VALUES ($1,$2,$3,$4,$5)")).
		WithArgs("s1", "f1", "u1", `{"a":true,"b":"hello"}`, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.InsertSubmission(context.Background(), models.Submission{
		ID:        "s1",
		FormID:    "f1",
		UserID:    "u1",
		Data:      models.Answers{"a": true, "b": "hello"},
		CreatedAt: created,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSubmission_SQLitePlaceholders(t *testing.T) {
	db, mock := newTestDB(t, DialectSQLite)
	repo := &submissionRepository{db: db, logger: logger.Nop()}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO form_submissions (id,form_id,user_id,data,created_at) VALUES (?,?,?,?,?)")).
		WithArgs("s1", "f1", "u1", `{}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.InsertSubmission(context.Background(), models.Submission{ID: "s1", FormID: "f1", UserID: "u1"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSubmission_MissingForm(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		db, mock := newTestDB(t, DialectPostgres)
		repo := &submissionRepository{db: db, logger: logger.Nop()}
		mock.ExpectExec("INSERT INTO form_submissions").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

		err := repo.InsertSubmission(context.Background(), models.Submission{ID: "s1", FormID: "nope", UserID: "u1"})
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("sqlite", func(t *testing.T) {
		db, mock := newTestDB(t, DialectSQLite)
		repo := &submissionRepository{db: db, logger: logger.Nop()}
		mock.ExpectExec("INSERT INTO form_submissions").
			WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey})

		err := repo.InsertSubmission(context.Background(), models.Submission{ID: "s1", FormID: "nope", UserID: "u1"})
		assert.ErrorIs(t, err, ErrFormNotFound)
	})
}

func TestInsertSubmission_OtherError(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	repo := &submissionRepository{db: db, logger: logger.Nop()}
	mock.ExpectExec("INSERT INTO form_submissions").WillReturnError(errors.New("disk full"))

	err := repo.InsertSubmission(context.Background(), models.Submission{ID: "s1", FormID: "f1", UserID: "u1"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrFormNotFound)
}
