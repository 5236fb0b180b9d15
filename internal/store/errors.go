package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrFormNotFound is returned when a form id matches no stored form,
	// including when a submission references a missing form.
	ErrFormNotFound = errors.New("form was not found")

	// ErrFormAlreadyExists is returned when a form id is already taken.
	ErrFormAlreadyExists = errors.New("form already exists")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the version the caller last read no longer matches the stored one,
	// meaning someone else changed the field list in between.
	ErrVersionConflict = errors.New("form version conflict occurred")

	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when no user matches the given login.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned when a session id matches no stored
	// session, or when the identity service no longer accepts a token.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrInvalidCredentials is returned by an identity service that rejects
	// a login/password pair.
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrNotSupported is returned by backends that cannot perform an
	// operation, e.g. migrations against the hosted REST backend.
	ErrNotSupported = errors.New("operation is not supported by the backend")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
