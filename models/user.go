package models

import "time"

// User represents an account that can sign in to the application.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUID).
	UserID string `json:"id"`

	// Login is the unique user login. For the hosted identity backend this
	// is the e-mail address.
	Login string `json:"login"`

	// PasswordHash is the bcrypt hash of the password.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials carries what a person types into the sign-in or
// registration form.
type Credentials struct {
	Login    string `json:"email"`
	Password string `json:"password"`
}

// Principal is the authenticated identity of the current request.
type Principal struct {
	ID    string
	Login string
}

// Session is a server-side record backing a signed session token.
// Revoking it signs the holder out even while the token is unexpired.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Active reports whether the session is neither revoked nor expired at now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
