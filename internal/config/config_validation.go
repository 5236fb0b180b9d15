// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "golang.org/x/crypto/bcrypt"

func (cfg *StructuredConfig) validate() error {
	db, rest := cfg.Storage.DB, cfg.Storage.REST

	switch {
	case db.DSN == "" && rest.URL == "":
		return ErrInvalidStorageConfigs
	case db.DSN != "" && rest.URL != "":
		return ErrInvalidStorageConfigs
	case db.DSN != "" && db.DriverName() != DriverPostgres && db.DriverName() != DriverSQLite:
		return ErrInvalidStorageConfigs
	case rest.URL != "" && rest.APIKey == "":
		return ErrInvalidStorageConfigs
	}

	// the hosted backend issues its own tokens
	if db.DSN != "" && cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
