// Package backend picks the storage backend described by the configuration.
package backend

import (
	"context"

	"github.com/MKhiriev/go-collab-forms/internal/adapter"
	"github.com/MKhiriev/go-collab-forms/internal/config"
	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/store"
)

// Open returns the SQL storages when a DSN is configured and the hosted REST
// storages otherwise. With AutoMigrate set, pending SQL migrations are
// applied before returning.
func Open(ctx context.Context, cfg config.Storage, log *logger.Logger) (*store.Storages, error) {
	if cfg.REST.URL != "" && cfg.DB.DSN == "" {
		return adapter.NewStorages(cfg.REST, log), nil
	}

	storages, err := store.NewStorages(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err = storages.Migrate(); err != nil {
			_ = storages.Close()
			return nil, err
		}
		log.Info().Str("func", "backend.Open").Str("driver", cfg.DB.DriverName()).Msg("migrations applied")
	}

	return storages, nil
}
