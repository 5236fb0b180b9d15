package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-collab-forms/internal/backend"
	"github.com/MKhiriev/go-collab-forms/internal/config"
	"github.com/MKhiriev/go-collab-forms/internal/handler"
	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/server"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(build)

	log := logger.NewLogger("collab-forms-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("driver", cfg.Storage.DB.DriverName()).
		Bool("rest", cfg.Storage.REST.URL != "").
		Msg("received configs")

	storages, err := backend.Open(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening storage backend")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storage backend")
		}
	}()

	services, err := service.NewServices(storages, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
