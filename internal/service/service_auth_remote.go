package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/internal/validators"
	"github.com/MKhiriev/go-collab-forms/models"
)

// remoteAuthService delegates to an identity service that owns users and
// sessions, and translates its errors into this package's.
type remoteAuthService struct {
	identity  store.IdentityProvider
	validator validators.Validator
	logger    *logger.Logger
}

func NewRemoteAuthService(identity store.IdentityProvider, logger *logger.Logger) AuthService {
	return &remoteAuthService{
		identity:  identity,
		validator: validators.NewFormValidator(),
		logger:    logger,
	}
}

func (a *remoteAuthService) Register(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	creds.Login = strings.TrimSpace(creds.Login)
	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	p, err := a.identity.SignUp(ctx, creds)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", creds.Login).Msg("sign up failed")
		return models.Principal{}, fmt.Errorf("sign up failed: %w", err)
	}
	return p, nil
}

func (a *remoteAuthService) SignIn(ctx context.Context, creds models.Credentials) (models.Token, error) {
	creds.Login = strings.TrimSpace(creds.Login)
	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	token, err := a.identity.SignIn(ctx, creds)
	if errors.Is(err, store.ErrInvalidCredentials) {
		return models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", creds.Login).Msg("sign in failed")
		return models.Token{}, fmt.Errorf("sign in failed: %w", err)
	}
	return token, nil
}

func (a *remoteAuthService) GetUser(ctx context.Context, token string) (models.Principal, error) {
	if token == "" {
		return models.Principal{}, ErrNotAuthenticated
	}

	p, err := a.identity.GetUser(ctx, token)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("get user failed")
		return models.Principal{}, fmt.Errorf("get user failed: %w", err)
	}
	return p, nil
}

func (a *remoteAuthService) CurrentUser(ctx context.Context) (models.Principal, error) {
	return currentUser(ctx, a)
}

func (a *remoteAuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	if err := a.identity.SignOut(ctx, token); err != nil {
		logger.FromContext(ctx).Err(err).Msg("sign out failed")
		return fmt.Errorf("sign out failed: %w", err)
	}
	return nil
}
