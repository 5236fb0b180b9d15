package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-collab-forms/internal/config"
	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/mock"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testToken = "signed.session.token"

var testPrincipal = models.Principal{ID: "u1", Login: "ada"}

type testServices struct {
	auth        *mock.MockAuthService
	forms       *mock.MockFormService
	submissions *mock.MockSubmissionService
}

// newTestHandlerWithMocks builds a Handler whose services are gomock mocks.
func newTestHandlerWithMocks(t *testing.T) (*Handler, testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testServices{
		auth:        mock.NewMockAuthService(ctrl),
		forms:       mock.NewMockFormService(ctrl),
		submissions: mock.NewMockSubmissionService(ctrl),
	}
	svcs := &service.Services{
		AuthService:       m.auth,
		FormService:       m.forms,
		SubmissionService: m.submissions,
		AppInfoService:    &mockAppInfoService{version: "test"},
	}
	return NewHandler(svcs, config.Server{}, logger.Nop()), m
}

// expectSession makes the session gate accept testToken.
func (m testServices) expectSession() {
	m.auth.EXPECT().GetUser(gomock.Any(), testToken).Return(testPrincipal, nil)
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withSessionCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testToken})
	return req
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()
	cfg := config.Server{SecureCookies: true}

	h := NewHandler(svc, cfg, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
	assert.True(t, h.cfg.SecureCookies)
}

func TestNewHandler_ParsesEveryPage(t *testing.T) {
	h := NewHandler(&service.Services{}, config.Server{}, logger.Nop())

	for _, name := range pageNames {
		assert.NotNil(t, h.pages[name], "page %q is not parsed", name)
	}
}

// ─────────────────────────────────────────────
// route registration
// ─────────────────────────────────────────────

func TestInit_RegistersRoutes(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)
	router := h.Init()

	want := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/login"},
		{http.MethodPost, "/login"},
		{http.MethodGet, "/register"},
		{http.MethodPost, "/register"},
		{http.MethodPost, "/logout"},
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/forms/f1"},
		{http.MethodPost, "/forms/f1"},
		{http.MethodGet, "/admin/dashboard"},
		{http.MethodPost, "/admin/forms"},
		{http.MethodGet, "/admin/forms/f1"},
		{http.MethodPost, "/admin/forms/f1/fields"},
		{http.MethodPost, "/admin/forms/f1/fields/a/delete"},
		{http.MethodPost, "/admin/forms/f1/fields/a/options"},
		{http.MethodGet, "/api/version/"},
		{http.MethodGet, "/metrics"},
		{http.MethodGet, "/"},
	}

	for _, rc := range want {
		t.Run(rc.method+" "+rc.path, func(t *testing.T) {
			assert.True(t, router.Match(chi.NewRouteContext(), rc.method, rc.path))
		})
	}
}

func TestInit_RootRedirectsToDashboard(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestInit_GatedRoutesRedirectWithoutSession(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)

	for _, path := range []string{"/dashboard", "/admin/dashboard", "/admin/forms/f1"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/login", rec.Header().Get("Location"))
		})
	}
}

func TestInit_UnknownPathRendersNotFoundPage(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not found")
}

func TestInit_MetricsEndpoint(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)

	// one request first so the request counter has a sample
	serve(h, httptest.NewRequest(http.MethodGet, "/login", nil))
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "collab_forms_http_requests_total")
}

// ─────────────────────────────────────────────
// render
// ─────────────────────────────────────────────

func TestRender_LayoutShowsUserAndMessage(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = req.WithContext(withUser(req, testPrincipal, testToken))
	rec := httptest.NewRecorder()

	h.render(rec, req, http.StatusTeapot, pageDashboard, "<careful>", dashboardPage{})

	body := rec.Body.String()
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "<title>Collaborative Form Editor</title>")
	assert.Contains(t, body, "ada")
	assert.Contains(t, body, `action="/logout"`)
	assert.Contains(t, body, "&lt;careful&gt;")
}

func TestRender_UnknownPage(t *testing.T) {
	h, _ := newTestHandlerWithMocks(t)
	rec := httptest.NewRecorder()

	h.render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
