package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-collab-forms/internal/config"
	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/internal/validators"
	"github.com/MKhiriev/go-collab-forms/models"
)

// authService is the local identity backend. Users and sessions live in the
// SQL database; the browser holds a signed JWT whose jti names the session,
// so revoking the session row signs the holder out.
type authService struct {
	// userRepository creates and looks up accounts.
	userRepository store.UserRepository

	// sessionRepository stores one row per sign-in.
	sessionRepository store.SessionRepository

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in and required of every token.
	tokenIssuer string

	// tokenDuration is the lifetime of a session and of its token.
	tokenDuration time.Duration

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	validator validators.Validator
	ids       *utils.UUIDGenerator
	now       func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs the local AuthService. The returned service is
// safe for concurrent use.
func NewAuthService(users store.UserRepository, sessions store.SessionRepository, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository:    users,
		sessionRepository: sessions,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		bcryptCost:        cost,
		validator:         validators.NewFormValidator(),
		ids:               utils.NewUUIDGenerator(),
		now:               time.Now,
		logger:            logger,
	}
}

// Register creates an account with a bcrypt hash of the password.
//
// Returns ErrInvalidDataProvided for a blank login or password and
// store.ErrLoginAlreadyExists (wrapped) when the login is taken.
func (a *authService) Register(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	log := logger.FromContext(ctx)

	creds.Login = strings.TrimSpace(creds.Login)
	if err := a.validator.Validate(ctx, creds); err != nil {
		log.Error().Err(err).Str("login", creds.Login).Msg("invalid credentials provided")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Principal{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		UserID:       a.ids.Generate(),
		Login:        creds.Login,
		PasswordHash: string(hash),
		CreatedAt:    a.now(),
	})
	if err != nil {
		log.Err(err).Str("login", creds.Login).Msg("user creation ended with error")
		return models.Principal{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return models.Principal{ID: user.UserID, Login: user.Login}, nil
}

// SignIn checks the password, opens a session and returns its token.
// An unknown login and a wrong password both yield ErrInvalidCredentials.
func (a *authService) SignIn(ctx context.Context, creds models.Credentials) (models.Token, error) {
	log := logger.FromContext(ctx)

	creds.Login = strings.TrimSpace(creds.Login)
	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByLogin(ctx, creds.Login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("login", creds.Login).Msg("sign in with unknown login")
		return models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("login", creds.Login).Msg("user search by login failed")
		return models.Token{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		log.Info().Str("user_id", user.UserID).Msg("wrong password")
		return models.Token{}, ErrInvalidCredentials
	}

	now := a.now()
	session := models.Session{
		ID:        a.ids.Generate(),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.tokenDuration),
	}
	if err = a.sessionRepository.CreateSession(ctx, session); err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("session creation failed")
		return models.Token{}, fmt.Errorf("session creation failed: %w", err)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, utils.SessionClaims{
		UserID:    user.UserID,
		Login:     user.Login,
		SessionID: session.ID,
	}, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// GetUser accepts a token only while its signature, issuer and expiry are
// valid and its session is neither revoked nor expired.
func (a *authService) GetUser(ctx context.Context, token string) (models.Principal, error) {
	claims, err := a.parse(token)
	if err != nil {
		return models.Principal{}, err
	}

	session, err := a.sessionRepository.FindSession(ctx, claims.SessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Principal{}, ErrNotAuthenticated
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("session_id", claims.SessionID).Msg("session lookup failed")
		return models.Principal{}, fmt.Errorf("session lookup failed: %w", err)
	}

	if !session.Active(a.now()) || session.UserID != claims.UserID {
		return models.Principal{}, ErrNotAuthenticated
	}

	return models.Principal{ID: claims.UserID, Login: claims.Login}, nil
}

func (a *authService) CurrentUser(ctx context.Context) (models.Principal, error) {
	return currentUser(ctx, a)
}

// SignOut revokes the session behind token. Signing out twice is not an
// error.
func (a *authService) SignOut(ctx context.Context, token string) error {
	claims, err := a.parse(token)
	if err != nil {
		return err
	}

	if err = a.sessionRepository.RevokeSession(ctx, claims.SessionID); err != nil {
		logger.FromContext(ctx).Err(err).Str("session_id", claims.SessionID).Msg("session revocation failed")
		return fmt.Errorf("session revocation failed: %w", err)
	}
	return nil
}

// parse normalises every token validation failure to ErrNotAuthenticated.
func (a *authService) parse(token string) (utils.SessionClaims, error) {
	if token == "" {
		return utils.SessionClaims{}, ErrNotAuthenticated
	}
	claims, _, err := utils.ValidateAndParseJWTToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return utils.SessionClaims{}, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return claims, nil
}

// currentUser resolves the session token carried by ctx through auth.
func currentUser(ctx context.Context, auth AuthService) (models.Principal, error) {
	token, ok := utils.GetSessionTokenFromContext(ctx)
	if !ok {
		return models.Principal{}, ErrNotAuthenticated
	}
	return auth.GetUser(ctx, token)
}
