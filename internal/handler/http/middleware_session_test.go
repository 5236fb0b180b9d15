package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ---- Helpers ----

type capturedRequest struct {
	called    bool
	principal models.Principal
	hasUser   bool
	token     string
	hasToken  bool
}

func capture(c *capturedRequest) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.principal, c.hasUser = utils.GetPrincipalFromContext(r.Context())
		c.token, c.hasToken = utils.GetSessionTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

// ---- sessionTokenFromRequest ----

func TestSessionTokenFromRequest_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		cookie    *http.Cookie
		wantToken string
		wantErr   error
	}{
		{name: "valid cookie", cookie: &http.Cookie{Name: sessionCookieName, Value: "abc"}, wantToken: "abc"},
		{name: "no cookie", wantErr: ErrNoSessionCookie},
		{name: "other cookie only", cookie: &http.Cookie{Name: "theme", Value: "dark"}, wantErr: ErrNoSessionCookie},
		{name: "empty value", cookie: &http.Cookie{Name: sessionCookieName, Value: ""}, wantErr: ErrEmptySessionCookie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			token, err := sessionTokenFromRequest(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ---- requireSession ----

func TestRequireSession_AttachesPrincipal(t *testing.T) {
	h, m := newTestHandlerWithMocks(t)
	m.expectSession()
	var got capturedRequest

	rec := httptest.NewRecorder()
	h.requireSession(capture(&got)).ServeHTTP(rec, withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil)))

	require.True(t, got.called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.hasUser)
	assert.Equal(t, testPrincipal, got.principal)
	assert.Equal(t, testToken, got.token)
}

func TestRequireSession_RejectedTokenClearsCookie(t *testing.T) {
	h, m := newTestHandlerWithMocks(t)
	m.auth.EXPECT().GetUser(gomock.Any(), testToken).Return(models.Principal{}, service.ErrNotAuthenticated)
	var got capturedRequest

	rec := httptest.NewRecorder()
	h.requireSession(capture(&got)).ServeHTTP(rec, withSessionCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil)))

	assert.False(t, got.called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Negative(t, sessionCookie(t, rec).MaxAge)
}

func TestRequireSession_NoCookieSkipsBackend(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)
	var got capturedRequest

	rec := httptest.NewRecorder()
	h.requireSession(capture(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.False(t, got.called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

// ---- withSession ----

func TestWithSession_NeverRedirects(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)

	t.Run("with cookie", func(t *testing.T) {
		var got capturedRequest
		rec := httptest.NewRecorder()
		h.withSession(capture(&got)).ServeHTTP(rec, withSessionCookie(httptest.NewRequest(http.MethodGet, "/forms/f1", nil)))

		require.True(t, got.called)
		assert.Equal(t, testToken, got.token)
		assert.False(t, got.hasUser, "the principal is resolved by the page, not here")
	})

	t.Run("without cookie", func(t *testing.T) {
		var got capturedRequest
		rec := httptest.NewRecorder()
		h.withSession(capture(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forms/f1", nil))

		require.True(t, got.called)
		assert.False(t, got.hasToken)
	})
}
