package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-collab-forms/internal/render"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/internal/view"
)

// errorStatuses is ordered: an error wrapping several sentinels gets the
// status of the first one listed.
var errorStatuses = []struct {
	target error
	status int
}{
	{service.ErrNotAuthenticated, http.StatusUnauthorized},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{view.ErrNotSelectField, http.StatusBadRequest},
	{render.ErrInvalidNumber, http.StatusUnprocessableEntity},
	{render.ErrInvalidOption, http.StatusUnprocessableEntity},

	{store.ErrFormNotFound, http.StatusNotFound},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrVersionConflict, http.StatusConflict},
	{store.ErrLoginAlreadyExists, http.StatusConflict},
	{store.ErrFormAlreadyExists, http.StatusConflict},
	{store.ErrNotSupported, http.StatusNotImplemented},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
