package http

import (
	"html/template"
	"net/http"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/internal/view"
	"github.com/go-chi/chi/v5"
)

type fillPage struct {
	FormID   string
	Title    string
	Controls []template.HTML
}

func (h *Handler) fillPage(w http.ResponseWriter, r *http.Request) {
	f := h.newFormFill()
	if err := f.Load(r.Context(), chi.URLParam(r, "formID")); err != nil {
		h.notFound(w, r)
		return
	}
	h.renderFill(w, r, http.StatusOK, f)
}

// submitForm stores the answers and returns to the dashboard. Rejected
// answers are shown again with the reason above the form.
func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	f := h.newFormFill()
	if err := f.Load(r.Context(), chi.URLParam(r, "formID")); err != nil {
		h.notFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Err(err).Str("form_id", f.Form.ID).Msg("unreadable submission")
		f.Err = err
		h.renderFill(w, r, http.StatusBadRequest, f)
		return
	}

	if err := f.Bind(r.PostForm); err != nil {
		log.Info().Err(err).Str("form_id", f.Form.ID).Msg("submission has invalid answers")
		h.renderFill(w, r, statusFromError(err), f)
		return
	}

	if err := f.Submit(r.Context()); err != nil {
		h.renderFill(w, r, statusFromError(err), f)
		return
	}

	log.Info().Str("form_id", f.Form.ID).Msg("form submitted")
	utils.SeeOther(w, r, "/dashboard")
}

func (h *Handler) newFormFill() *view.FormFill {
	return view.NewFormFill(h.services.FormService, h.services.AuthService, h.services.SubmissionService)
}

func (h *Handler) renderFill(w http.ResponseWriter, r *http.Request, status int, f *view.FormFill) {
	controls, err := f.Controls()
	if err != nil {
		logger.FromRequest(r).Err(err).Str("form_id", f.Form.ID).Msg("rendering controls failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.render(w, r, status, pageFill, f.Message(), fillPage{
		FormID:   f.Form.ID,
		Title:    f.Form.Title,
		Controls: controls,
	})
}
