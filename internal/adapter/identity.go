package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/models"
)

const (
	signUpPath = "/auth/v1/signup"
	tokenPath  = "/auth/v1/token"
	userPath   = "/auth/v1/user"
	logoutPath = "/auth/v1/logout"
)

// identityAdapter implements [store.IdentityProvider] over GoTrue.
type identityAdapter struct {
	rest *restClient
	now  func() time.Time
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueSession struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	ExpiresAt   int64       `json:"expires_at"`
	User        *gotrueUser `json:"user"`
}

func (u gotrueUser) principal() models.Principal {
	return models.Principal{ID: u.ID, Login: u.Email}
}

func (a *identityAdapter) SignUp(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	resp, err := a.rest.bearer(ctx, a.rest.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(signUpPath)
	if err != nil {
		return models.Principal{}, fmt.Errorf("sign up request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if isAlreadyRegistered(err) {
			return models.Principal{}, store.ErrLoginAlreadyExists
		}
		return models.Principal{}, err
	}

	// depending on e-mail confirmation settings the body is either the
	// user or a session wrapping it
	var body struct {
		gotrueUser
		User *gotrueUser `json:"user"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Principal{}, fmt.Errorf("decode sign up response: %w", err)
	}
	if body.User != nil {
		return body.User.principal(), nil
	}
	return body.gotrueUser.principal(), nil
}

func (a *identityAdapter) SignIn(ctx context.Context, creds models.Credentials) (models.Token, error) {
	resp, err := a.rest.bearer(ctx, a.rest.apiKey).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("grant_type", "password").
		SetBody(creds).
		Post(tokenPath)
	if err != nil {
		return models.Token{}, fmt.Errorf("sign in request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrUnauthorized) {
			return models.Token{}, fmt.Errorf("%w: %w", store.ErrInvalidCredentials, err)
		}
		return models.Token{}, err
	}

	var session gotrueSession
	if err = json.Unmarshal(resp.Body(), &session); err != nil {
		return models.Token{}, fmt.Errorf("decode sign in response: %w", err)
	}
	if session.AccessToken == "" {
		return models.Token{}, errors.New("sign in response carries no access token")
	}

	token := models.Token{SignedString: session.AccessToken}
	if session.User != nil {
		token.Subject = session.User.ID
		token.Login = session.User.Email
	}
	token.ExpiresAt = a.expiry(session)

	return token, nil
}

func (a *identityAdapter) GetUser(ctx context.Context, accessToken string) (models.Principal, error) {
	resp, err := a.rest.bearer(ctx, accessToken).Get(userPath)
	if err != nil {
		return models.Principal{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) {
			return models.Principal{}, fmt.Errorf("%w: %w", store.ErrSessionNotFound, err)
		}
		return models.Principal{}, err
	}

	var user gotrueUser
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.Principal{}, fmt.Errorf("decode user response: %w", err)
	}
	if user.ID == "" {
		return models.Principal{}, fmt.Errorf("%w: user response carries no id", store.ErrSessionNotFound)
	}

	return user.principal(), nil
}

func (a *identityAdapter) SignOut(ctx context.Context, accessToken string) error {
	resp, err := a.rest.bearer(ctx, accessToken).Post(logoutPath)
	if err != nil {
		return fmt.Errorf("sign out request: %w", err)
	}
	return mapHTTPError(resp)
}

// expiry prefers the absolute expires_at GoTrue reports and falls back to
// expires_in relative to now.
func (a *identityAdapter) expiry(s gotrueSession) *jwt.NumericDate {
	switch {
	case s.ExpiresAt > 0:
		return jwt.NewNumericDate(time.Unix(s.ExpiresAt, 0))
	case s.ExpiresIn > 0:
		return jwt.NewNumericDate(a.clock().Add(time.Duration(s.ExpiresIn) * time.Second))
	}
	return nil
}

func (a *identityAdapter) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func isAlreadyRegistered(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == "user_already_exists" || apiErr.Code == "email_exists" {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "already registered")
}
