package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/models"
)

const (
	formsPath   = "/rest/v1/forms"
	formColumns = "id,title,fields,created_at,created_by,version"
)

// formAdapter implements [store.FormRepository] over PostgREST.
type formAdapter struct {
	rest *restClient
}

func (a *formAdapter) ListForms(ctx context.Context) ([]models.Form, error) {
	resp, err := a.rest.request(ctx).
		SetQueryParams(map[string]string{
			"select": formColumns,
			"order":  "created_at.desc,id.asc",
		}).
		Get(formsPath)
	if err != nil {
		return nil, fmt.Errorf("list forms request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err = json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("decode forms: %w", err)
	}

	forms := make([]models.Form, 0, len(rows))
	for _, row := range rows {
		var f models.Form
		err = json.Unmarshal(row, &f)
		if errors.Is(err, models.ErrUnknownFieldType) {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "*formAdapter.ListForms").Msg("skipping form with unknown field type")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("decode form: %w", err)
		}
		forms = append(forms, f)
	}
	return forms, nil
}

func (a *formAdapter) GetForm(ctx context.Context, id string) (models.Form, error) {
	resp, err := a.rest.request(ctx).
		SetQueryParams(map[string]string{
			"select": formColumns,
			"id":     "eq." + id,
		}).
		Get(formsPath)
	if err != nil {
		return models.Form{}, fmt.Errorf("get form request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		// a malformed uuid is reported as 22P02
		if apiCode(err) == pgerrcode.InvalidTextRepresentation {
			return models.Form{}, store.ErrFormNotFound
		}
		return models.Form{}, err
	}

	return singleForm(resp.Body())
}

func (a *formAdapter) CreateForm(ctx context.Context, form models.Form) (models.Form, error) {
	form.Version = 1
	if form.Fields == nil {
		form.Fields = models.Fields{}
	}

	resp, err := a.rest.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetBody(form).
		Post(formsPath)
	if err != nil {
		return models.Form{}, fmt.Errorf("create form request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if apiCode(err) == pgerrcode.UniqueViolation {
			return models.Form{}, store.ErrFormAlreadyExists
		}
		return models.Form{}, err
	}

	return singleForm(resp.Body())
}

// UpdateFields filters on both id and version, so PostgREST updates zero
// rows when the version moved on; the follow-up read tells a missing form
// from a stale one.
func (a *formAdapter) UpdateFields(ctx context.Context, id string, fields models.Fields, expectedVersion int64) (int64, error) {
	if fields == nil {
		fields = models.Fields{}
	}

	resp, err := a.rest.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetQueryParams(map[string]string{
			"select":  formColumns,
			"id":      "eq." + id,
			"version": "eq." + strconv.FormatInt(expectedVersion, 10),
		}).
		SetBody(map[string]any{
			"fields":  fields,
			"version": expectedVersion + 1,
		}).
		Patch(formsPath)
	if err != nil {
		return 0, fmt.Errorf("update fields request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	updated, err := singleForm(resp.Body())
	if err == nil {
		return updated.Version, nil
	}
	if !errors.Is(err, store.ErrFormNotFound) {
		return 0, err
	}

	current, err := a.GetForm(ctx, id)
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Warn().Str("func", "*formAdapter.UpdateFields").
		Str("form_id", id).
		Int64("expected_version", expectedVersion).
		Int64("stored_version", current.Version).
		Msg("stale field list update rejected")

	return 0, fmt.Errorf("%w: expected version %d, stored %d", store.ErrVersionConflict, expectedVersion, current.Version)
}

func singleForm(body []byte) (models.Form, error) {
	var forms []models.Form
	if err := json.Unmarshal(body, &forms); err != nil {
		return models.Form{}, fmt.Errorf("decode forms: %w", err)
	}
	if len(forms) == 0 {
		return models.Form{}, store.ErrFormNotFound
	}
	return forms[0], nil
}
