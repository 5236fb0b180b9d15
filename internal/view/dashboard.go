package view

import (
	"cmp"
	"context"
	"slices"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/models"
)

const dateLayout = "2006-01-02"

// FormSummary is one dashboard row.
type FormSummary struct {
	ID      string
	Title   string
	Created string
	FillURL string
	EditURL string
}

// Dashboard lists every form, newest first.
type Dashboard struct {
	forms service.FormService

	Forms []FormSummary
}

func NewDashboard(forms service.FormService) *Dashboard {
	return &Dashboard{forms: forms}
}

// Load fills the list. On failure the list stays empty.
func (d *Dashboard) Load(ctx context.Context) error {
	forms, err := d.forms.ListForms(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("dashboard failed to list forms")
		d.Forms = nil
		return err
	}

	// backends already order; this keeps the page right if one does not
	slices.SortStableFunc(forms, func(a, b models.Form) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	d.Forms = make([]FormSummary, 0, len(forms))
	for _, f := range forms {
		d.Forms = append(d.Forms, FormSummary{
			ID:      f.ID,
			Title:   f.Title,
			Created: f.CreatedAt.Format(dateLayout),
			FillURL: "/forms/" + f.ID,
			EditURL: "/admin/forms/" + f.ID,
		})
	}
	return nil
}
