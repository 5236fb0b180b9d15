package service

import (
	"github.com/MKhiriev/go-collab-forms/internal/config"
	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/models"
)

type Services struct {
	AuthService       AuthService
	FormService       FormService
	SubmissionService SubmissionService
	AppInfoService    AppInfoService
}

// NewServices wires the services over storages. A backend that brings its
// own identity provider gets the remote auth service; SQL backends get the
// local one.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.BuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	var auth AuthService
	if storages.Identity != nil {
		auth = NewRemoteAuthService(storages.Identity, logger)
	} else {
		auth = NewAuthService(storages.Users, storages.Sessions, cfg.App, logger)
	}

	return &Services{
		AuthService:       auth,
		FormService:       NewFormService(storages.Forms, logger),
		SubmissionService: NewSubmissionService(storages.Submissions, logger),
		AppInfoService:    appInfo,
	}, nil
}
