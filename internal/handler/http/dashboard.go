package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/internal/view"
	"github.com/MKhiriev/go-collab-forms/models"
)

type dashboardPage struct {
	Forms []view.FormSummary
}

// dashboard lists forms to fill. A backend failure shows an empty list.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, pageDashboard)
}

func (h *Handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, pageAdminDashboard)
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, page string) {
	d := view.NewDashboard(h.services.FormService)

	var message string
	if err := d.Load(r.Context()); err != nil {
		message = "Forms could not be loaded."
	}

	h.render(w, r, http.StatusOK, page, message, dashboardPage{Forms: d.Forms})
}

// createForm stores an empty form and opens it in the editor.
func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("unreadable new form request")
		utils.SeeOther(w, r, "/admin/dashboard")
		return
	}

	form, err := h.services.FormService.CreateForm(r.Context(), models.Form{
		Title:  strings.TrimSpace(r.PostForm.Get("title")),
		Fields: models.Fields{},
	})
	if err != nil {
		log.Err(err).Msg("creating form failed")
		utils.SeeOther(w, r, "/admin/dashboard")
		return
	}

	log.Info().Str("form_id", form.ID).Msg("form created")
	utils.SeeOther(w, r, "/admin/forms/"+form.ID)
}
