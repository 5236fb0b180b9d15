package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-collab-forms/models"
)

// AuthService is the login/logout gate. Tokens are opaque to callers.
type AuthService interface {
	Register(ctx context.Context, creds models.Credentials) (models.Principal, error)
	SignIn(ctx context.Context, creds models.Credentials) (models.Token, error)

	// GetUser returns the principal holding token, or ErrNotAuthenticated.
	GetUser(ctx context.Context, token string) (models.Principal, error)

	// CurrentUser is GetUser for the session token carried by ctx.
	CurrentUser(ctx context.Context) (models.Principal, error)

	SignOut(ctx context.Context, token string) error
}

type FormService interface {
	// ListForms returns all forms, newest first.
	ListForms(ctx context.Context) ([]models.Form, error)
	GetForm(ctx context.Context, id string) (models.Form, error)

	// CreateForm assigns missing ids, cleans markup from user text and
	// stores the form.
	CreateForm(ctx context.Context, form models.Form) (models.Form, error)

	// ReplaceFields stores fields as the whole field list of the form,
	// provided nobody changed it since expectedVersion was read.
	ReplaceFields(ctx context.Context, formID string, fields models.Fields, expectedVersion int64) (int64, error)

	// NewFieldID returns an id distinct from every id in fields.
	NewFieldID(fields models.Fields) string
}

type SubmissionService interface {
	Submit(ctx context.Context, submission models.Submission) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfo
}
