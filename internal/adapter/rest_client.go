package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-collab-forms/internal/config"
	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
)

type restClient struct {
	client *resty.Client
	apiKey string
	logger *logger.Logger
}

func newRESTClient(cfg config.REST, log *logger.Logger) *restClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Accept", "application/json")

	return &restClient{client: cli, apiKey: cfg.APIKey, logger: log}
}

// request starts a request authorised as the signed-in user when ctx
// carries a session token, and as the project otherwise.
func (c *restClient) request(ctx context.Context) *resty.Request {
	token, ok := utils.GetSessionTokenFromContext(ctx)
	if !ok {
		token = c.apiKey
	}
	return c.bearer(ctx, token)
}

func (c *restClient) bearer(ctx context.Context, token string) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token)
}

// NewStorages builds the store bundle backed by the hosted backend.
// Users and sessions belong to the identity service, so only Forms,
// Submissions and Identity are set.
func NewStorages(cfg config.REST, log *logger.Logger) *store.Storages {
	c := newRESTClient(cfg, log)
	log.Debug().Str("func", "adapter.NewStorages").Str("url", cfg.URL).Msg("using hosted REST backend")

	return &store.Storages{
		Forms:       &formAdapter{rest: c},
		Submissions: &submissionAdapter{rest: c},
		Identity:    &identityAdapter{rest: c},
	}
}
