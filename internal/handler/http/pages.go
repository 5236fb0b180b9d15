// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageLogin          = "login"
	pageRegister       = "register"
	pageDashboard      = "dashboard"
	pageAdminDashboard = "admin_dashboard"
	pageEditor         = "editor"
	pageFill           = "fill"
	pageNotFound       = "not_found"
)

var pageNames = []string{
	pageLogin, pageRegister, pageDashboard, pageAdminDashboard,
	pageEditor, pageFill, pageNotFound,
}

// pages holds one template set per page, each combined with the layout.
type pages map[string]*template.Template

func mustParsePages() pages {
	p := make(pages, len(pageNames))
	for _, name := range pageNames {
		p[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return p
}

// pageData is what every page template receives.
type pageData struct {
	SignedIn bool
	User     models.Principal
	Message  string
	Data     any
}

// render executes page into a buffer first so a template failure still
// produces a clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, message string, data any) {
	log := logger.FromRequest(r)

	t, ok := h.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, signedIn := utils.GetPrincipalFromContext(r.Context())

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", pageData{
		SignedIn: signedIn,
		User:     principal,
		Message:  message,
		Data:     data,
	})
	if err != nil {
		log.Err(fmt.Errorf("render %s: %w", page, err)).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err = buf.WriteTo(w); err != nil {
		log.Err(err).Str("page", page).Msg("writing page failed")
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pageNotFound, "", nil)
}
