// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/MKhiriev/go-collab-forms/internal/backend"
	"github.com/MKhiriev/go-collab-forms/internal/config"
	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/migrations"
	"github.com/MKhiriev/go-collab-forms/models"
	"gopkg.in/yaml.v3"
)

const (
	cmdMigrate = "migrate"
	cmdSeed    = "seed"
	cmdUserAdd = "useradd"
)

var commands = []string{cmdMigrate, cmdSeed, cmdUserAdd}

var (
	errNoCommand      = errors.New("no command given (migrate, seed, useradd)")
	errUnknownCommand = errors.New("unknown command")
	errNoSeedFile     = errors.New("seed needs -f <file>")
)

// askFunc is survey.AskOne; tests replace it.
type askFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

func run(ctx context.Context, args []string, log *logger.Logger) error {
	configArgs, cmd, cmdArgs, err := splitArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.GetStructuredConfig(configArgs)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	storages, err := backend.Open(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error opening storage backend: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storage backend")
		}
	}()

	if cmd == cmdMigrate {
		return migrate(storages, os.Stdout, log)
	}

	services, err := service.NewServices(storages, *cfg, models.NewBuildInfo("", "", ""), log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	switch cmd {
	case cmdSeed:
		return seedCommand(ctx, services.FormService, cmdArgs, log)
	default:
		return userAddCommand(ctx, services.AuthService, cmdArgs, survey.AskOne, log)
	}
}

// splitArgs separates the config flags in front of the command from the
// command and its own flags.
func splitArgs(args []string) (configArgs []string, cmd string, cmdArgs []string, err error) {
	i := slices.IndexFunc(args, func(a string) bool {
		return slices.Contains(commands, a)
	})
	if i < 0 {
		for _, a := range args {
			if len(a) > 0 && a[0] != '-' {
				return nil, "", nil, fmt.Errorf("%w: %q", errUnknownCommand, a)
			}
		}
		return nil, "", nil, errNoCommand
	}
	return args[:i], args[i], args[i+1:], nil
}

// migrate applies SQL migrations. The hosted backend has no connection to
// migrate through, so its extra schema is printed to out instead.
func migrate(storages *store.Storages, out io.Writer, log *logger.Logger) error {
	err := storages.Migrate()
	if errors.Is(err, store.ErrNotSupported) {
		schema, err := migrations.HostedSchema()
		if err != nil {
			return err
		}
		if _, err = io.WriteString(out, schema); err != nil {
			return fmt.Errorf("print hosted schema: %w", err)
		}
		log.Info().Msg("hosted backend: run the printed SQL in the database console")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info().Msg("migrations applied")
	return nil
}

func seedCommand(ctx context.Context, forms service.FormService, args []string, log *logger.Logger) error {
	fs := flag.NewFlagSet(cmdSeed, flag.ContinueOnError)
	path := fs.String("f", "", "YAML file with a list of forms")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errNoSeedFile
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	n, err := seed(ctx, forms, f, log)
	if err != nil {
		return err
	}
	log.Info().Int("forms", n).Str("file", *path).Msg("seed finished")
	return nil
}

// seed creates every form listed in r and stops at the first failure.
// It returns how many forms were stored.
func seed(ctx context.Context, forms service.FormService, r io.Reader, log *logger.Logger) (int, error) {
	var list []models.Form
	if err := yaml.NewDecoder(r).Decode(&list); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	for i, form := range list {
		created, err := forms.CreateForm(ctx, form)
		if err != nil {
			return i, fmt.Errorf("seed form %d (%q): %w", i+1, form.Title, err)
		}
		log.Info().Str("form_id", created.ID).Str("title", created.Title).Int("fields", len(created.Fields)).Msg("form created")
	}
	return len(list), nil
}

func userAddCommand(ctx context.Context, auth service.AuthService, args []string, ask askFunc, log *logger.Logger) error {
	fs := flag.NewFlagSet(cmdUserAdd, flag.ContinueOnError)
	login := fs.String("login", "", "login of the new user; asked when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds, err := askCredentials(*login, ask)
	if err != nil {
		return err
	}

	p, err := auth.Register(ctx, creds)
	if err != nil {
		return fmt.Errorf("register %q: %w", creds.Login, err)
	}
	log.Info().Str("user_id", p.ID).Str("login", p.Login).Msg("user created")
	return nil
}

func askCredentials(login string, ask askFunc) (models.Credentials, error) {
	creds := models.Credentials{Login: login}

	if creds.Login == "" {
		err := ask(&survey.Input{Message: "Login:"}, &creds.Login, survey.WithValidator(survey.Required))
		if err != nil {
			return models.Credentials{}, fmt.Errorf("ask login: %w", err)
		}
	}

	err := ask(&survey.Password{Message: "Password:"}, &creds.Password, survey.WithValidator(survey.Required))
	if err != nil {
		return models.Credentials{}, fmt.Errorf("ask password: %w", err)
	}
	return creds, nil
}
