package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gzipTestBody = "<html><body>hello, gzip</body></html>"

func pageHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		if bodyAllowed(status) {
			_, _ = io.WriteString(w, gzipTestBody)
		}
	})
}

func TestWithGZip_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		acceptEncoding string
		status         int
		wantGzip       bool
	}{
		{name: "gzip accepted", method: http.MethodGet, path: "/dashboard", acceptEncoding: "gzip, deflate", status: http.StatusOK, wantGzip: true},
		{name: "gzip not accepted", method: http.MethodGet, path: "/dashboard", status: http.StatusOK},
		{name: "error page compressed", method: http.MethodGet, path: "/forms/x", acceptEncoding: "gzip", status: http.StatusNotFound, wantGzip: true},
		{name: "redirect left alone", method: http.MethodPost, path: "/login", acceptEncoding: "gzip", status: http.StatusSeeOther},
		{name: "metrics skipped", method: http.MethodGet, path: metricsPath, acceptEncoding: "gzip", status: http.StatusOK},
		{name: "HEAD skipped", method: http.MethodHead, path: "/dashboard", acceptEncoding: "gzip", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()

			withGZip(pageHandler(tt.status)).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if !tt.wantGzip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				if bodyAllowed(tt.status) && tt.method != http.MethodHead {
					assert.Equal(t, gzipTestBody, rec.Body.String())
				}
				return
			}

			assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")

			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			plain, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, gzipTestBody, string(plain))
		})
	}
}

func TestWithGZip_ImplicitStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("a", 1024))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Less(t, rec.Body.Len(), 1024)
}
