package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-collab-forms/internal/config"
	"github.com/MKhiriev/go-collab-forms/internal/logger"
)

// Storages bundles the repositories of one backend.
//
// SQL backends fill Users and Sessions and leave Identity nil; the hosted
// REST backend fills Identity and leaves Users and Sessions nil.
type Storages struct {
	Forms       FormRepository
	Submissions SubmissionRepository
	Users       UserRepository
	Sessions    SessionRepository
	Identity    IdentityProvider

	db *DB
}

// NewStorages connects to the SQL database described by cfg and builds the
// repositories on top of it.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DriverName() {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DriverName())
	}
	if err != nil {
		return nil, err
	}

	return NewSQLStorages(db, log), nil
}

// NewSQLStorages builds repositories over an already open connection.
func NewSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Forms:       NewFormRepository(db, log),
		Submissions: NewSubmissionRepository(db, log),
		Users:       NewUserRepository(db, log),
		Sessions:    NewSessionRepository(db, log),
		db:          db,
	}
}

// Migrate applies pending migrations. Backends without a SQL connection
// return [ErrNotSupported].
func (s *Storages) Migrate() error {
	if s.db == nil {
		return ErrNotSupported
	}
	return s.db.Migrate()
}

// Close releases the SQL connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
