package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/models"
	"github.com/rs/zerolog"
)

const sessionCookieName = "session"

// requireSession lets the request through only when the session cookie
// resolves to a user. Anyone else is sent to the login page.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := sessionTokenFromRequest(r)
		if err != nil {
			log.Debug().Err(err).Str("uri", r.RequestURI).Msg("no session, redirecting to login")
			utils.SeeOther(w, r, "/login")
			return
		}

		principal, err := h.services.AuthService.GetUser(r.Context(), token)
		if err != nil {
			log.Info().Err(err).Msg("session rejected, redirecting to login")
			h.clearSessionCookie(w)
			utils.SeeOther(w, r, "/login")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r, principal, token)))
	})
}

// withSession attaches the cookie token when there is one and never
// redirects. Resolving it to a user is left to the handler.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, err := sessionTokenFromRequest(r); err == nil {
			r = r.WithContext(utils.WithSessionToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

func withUser(r *http.Request, principal models.Principal, token string) context.Context {
	l := logger.FromRequest(r).GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("user_id", principal.ID)
	})

	ctx := utils.WithSessionToken(r.Context(), token)
	ctx = utils.WithPrincipal(ctx, principal)
	return l.WithContext(ctx)
}

func sessionTokenFromRequest(r *http.Request) (string, error) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", ErrNoSessionCookie
	}

	token := strings.TrimSpace(c.Value)
	if token == "" {
		return "", ErrEmptySessionCookie
	}
	return token, nil
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	c := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if exp := token.Expiry(); !exp.IsZero() {
		c.Expires = exp
	}
	http.SetCookie(w, c)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
