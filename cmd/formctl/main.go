// Command formctl administers a form server backend: it applies migrations,
// seeds forms from YAML and creates user accounts.
//
// Usage:
//
//	formctl [config flags] migrate
//	formctl [config flags] seed -f forms.yaml
//	formctl [config flags] useradd [-login name]
//
// Config flags are the server's (-d, -driver, -rest-url, -c, ...); the
// environment and JSON file are read the same way.
package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
)

func main() {
	log := logger.NewConsoleLogger("formctl")

	if err := run(context.Background(), os.Args[1:], log); err != nil {
		log.Fatal().Err(err).Send()
	}
}
