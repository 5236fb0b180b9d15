package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/internal/view"
	"github.com/MKhiriev/go-collab-forms/models"
	"github.com/go-chi/chi/v5"
)

type editorPage struct {
	Form  models.Form
	Draft models.FieldDraft
	Types []models.FieldType
}

func (h *Handler) editorPage(w http.ResponseWriter, r *http.Request) {
	e := view.NewFormEditor(h.services.FormService)
	if err := e.Load(r.Context(), chi.URLParam(r, "formID")); err != nil {
		h.notFound(w, r)
		return
	}

	h.render(w, r, http.StatusOK, pageEditor, "", editorPage{
		Form:  e.Form,
		Draft: e.Draft,
		Types: models.FieldTypes,
	})
}

func (h *Handler) addField(w http.ResponseWriter, r *http.Request) {
	h.editField(w, r, func(e *view.FormEditor) error {
		ft, err := models.ParseFieldType(r.PostForm.Get("type"))
		if err != nil {
			return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
		}
		return e.AddField(r.Context(), models.FieldDraft{
			Type:     ft,
			Label:    r.PostForm.Get("label"),
			Required: r.PostForm.Get("required") != "",
		})
	})
}

func (h *Handler) removeField(w http.ResponseWriter, r *http.Request) {
	h.editField(w, r, func(e *view.FormEditor) error {
		return e.RemoveField(r.Context(), chi.URLParam(r, "fieldID"))
	})
}

func (h *Handler) setFieldOptions(w http.ResponseWriter, r *http.Request) {
	h.editField(w, r, func(e *view.FormEditor) error {
		options := strings.Split(strings.ReplaceAll(r.PostForm.Get("options"), "\r\n", "\n"), "\n")
		return e.SetFieldOptions(r.Context(), chi.URLParam(r, "fieldID"), options)
	})
}

// editField loads the form, applies edit on top of the version the page was
// rendered with and sends the browser back to the editor, which shows
// whatever is stored. Failed edits are only logged.
func (h *Handler) editField(w http.ResponseWriter, r *http.Request, edit func(e *view.FormEditor) error) {
	log := logger.FromRequest(r)
	formID := chi.URLParam(r, "formID")

	e := view.NewFormEditor(h.services.FormService)
	if err := e.Load(r.Context(), formID); err != nil {
		h.notFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Err(err).Str("form_id", formID).Msg("unreadable editor form")
		utils.SeeOther(w, r, "/admin/forms/"+formID)
		return
	}
	if v, err := strconv.ParseInt(r.PostForm.Get("version"), 10, 64); err == nil {
		e.ExpectVersion(v)
	}

	if err := edit(e); err != nil {
		log.Warn().Err(err).
			Str("form_id", formID).
			Int("status", statusFromError(err)).
			Msg("field edit dropped")
	}

	utils.SeeOther(w, r, "/admin/forms/"+formID)
}
