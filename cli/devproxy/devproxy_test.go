package devproxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashare/shared/constants"
)

func TestProxyForwardsPrefixes(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get(constants.RequestIDHeader))
		_, _ = w.Write([]byte(r.Method + " " + r.URL.RequestURI()))
	}))
	defer backend.Close()

	handler, err := NewHandler(backend.URL)
	require.NoError(t, err)

	proxy := httptest.NewServer(handler)
	defer proxy.Close()

	for _, path := range []string{"/api/files?shared=true", "/upload/a.txt", "/api"} {
		resp, err := http.Get(proxy.URL + path)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "GET "+path, string(body))
	}
}

func TestProxyRejectsOtherPaths(t *testing.T) {
	handler, err := NewHandler("http://localhost:5001")
	require.NoError(t, err)

	for _, path := range []string{"/", "/dashboard", "/apix"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestProxyBackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	target := backend.URL
	backend.Close()

	handler, err := NewHandler(target)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{}"))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestInvalidTarget(t *testing.T) {
	_, err := NewHandler("localhost")
	assert.Error(t, err)
}
