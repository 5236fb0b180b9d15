// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-collab-forms/models"
)

var formColumns = []string{"id", "title", "fields", "created_at", "created_by", "version"}

func (db *DB) buildListFormsQuery() (string, []any, error) {
	return db.builder().
		Select(formColumns...).
		From("forms").
		OrderBy("created_at DESC", "id").
		ToSql()
}

func (db *DB) buildGetFormQuery(id string) (string, []any, error) {
	return db.builder().
		Select(formColumns...).
		From("forms").
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) buildGetFormVersionQuery(id string) (string, []any, error) {
	return db.builder().
		Select("version").
		From("forms").
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) buildInsertFormQuery(form models.Form) (string, []any, error) {
	return db.builder().
		Insert("forms").
		Columns(formColumns...).
		Values(form.ID, form.Title, form.Fields, form.CreatedAt.UTC(), form.CreatedBy, form.Version).
		ToSql()
}

// buildUpdateFieldsQuery replaces the field list and bumps the version only
// while the stored version still equals expectedVersion.
func (db *DB) buildUpdateFieldsQuery(id string, fields models.Fields, expectedVersion int64) (string, []any, error) {
	return db.builder().
		Update("forms").
		Set("fields", fields).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": id, "version": expectedVersion}).
		ToSql()
}

func (db *DB) buildInsertSubmissionQuery(s models.Submission) (string, []any, error) {
	return db.builder().
		Insert("form_submissions").
		Columns("id", "form_id", "user_id", "data", "created_at").
		Values(s.ID, s.FormID, s.UserID, s.Data, s.CreatedAt.UTC()).
		ToSql()
}

func (db *DB) buildInsertUserQuery(u models.User) (string, []any, error) {
	return db.builder().
		Insert("users").
		Columns("user_id", "login", "password_hash", "created_at").
		Values(u.UserID, u.Login, u.PasswordHash, u.CreatedAt.UTC()).
		ToSql()
}

func (db *DB) buildFindUserByLoginQuery(login string) (string, []any, error) {
	return db.builder().
		Select("user_id", "login", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"login": login}).
		ToSql()
}

func (db *DB) buildInsertSessionQuery(s models.Session) (string, []any, error) {
	return db.builder().
		Insert("sessions").
		Columns("id", "user_id", "created_at", "expires_at").
		Values(s.ID, s.UserID, s.CreatedAt.UTC(), s.ExpiresAt.UTC()).
		ToSql()
}

func (db *DB) buildFindSessionQuery(id string) (string, []any, error) {
	return db.builder().
		Select("id", "user_id", "created_at", "expires_at", "revoked_at").
		From("sessions").
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildRevokeSessionQuery leaves an already revoked session untouched so the
// first revocation time is kept.
func (db *DB) buildRevokeSessionQuery(id string, at time.Time) (string, []any, error) {
	return db.builder().
		Update("sessions").
		Set("revoked_at", at.UTC()).
		Where(sq.Eq{"id": id, "revoked_at": nil}).
		ToSql()
}
