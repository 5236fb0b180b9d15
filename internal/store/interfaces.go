// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-collab-forms/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// FormRepository persists forms.
type FormRepository interface {
	// ListForms returns every form, newest first.
	ListForms(ctx context.Context) ([]models.Form, error)

	// GetForm returns the form with the given id or [ErrFormNotFound].
	GetForm(ctx context.Context, id string) (models.Form, error)

	// CreateForm stores a new form. ID, CreatedAt and CreatedBy must be set;
	// the stored version starts at 1.
	CreateForm(ctx context.Context, form models.Form) (models.Form, error)

	// UpdateFields replaces the whole field list of a form if its stored
	// version still equals expectedVersion, and returns the new version.
	// A mismatch yields [ErrVersionConflict]; a missing form [ErrFormNotFound].
	UpdateFields(ctx context.Context, id string, fields models.Fields, expectedVersion int64) (int64, error)
}

// SubmissionRepository persists submissions. Submissions are insert-only.
type SubmissionRepository interface {
	// InsertSubmission stores one submission. A submission for a missing
	// form yields [ErrFormNotFound].
	InsertSubmission(ctx context.Context, submission models.Submission) error
}

// UserRepository persists local user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// SessionRepository persists server-side sessions of the local identity
// backend.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	FindSession(ctx context.Context, id string) (models.Session, error)
	RevokeSession(ctx context.Context, id string) error
}

// IdentityProvider is an external identity service that owns users and
// sessions. When a backend supplies one, local users and sessions are not
// used.
type IdentityProvider interface {
	SignUp(ctx context.Context, creds models.Credentials) (models.Principal, error)
	SignIn(ctx context.Context, creds models.Credentials) (models.Token, error)
	GetUser(ctx context.Context, accessToken string) (models.Principal, error)
	SignOut(ctx context.Context, accessToken string) error
}
