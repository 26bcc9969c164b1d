package requests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashare/shared/constants"
)

func TestSendRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		assert.Equal(t, constants.CLIUserAgent, r.Header.Get("User-Agent"))
		assert.Len(t, r.Header.Get(constants.RequestIDHeader), 36)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"a":1}`, string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	resp, err := PostRequest("t1", server.URL, []byte(`{"a":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSendRequestWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodDelete, r.Method)
	}))
	defer server.Close()

	resp, err := DeleteRequest("", server.URL)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestUploadFile(t *testing.T) {
	contents := strings.Repeat("datashare", 10000)
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		assert.Greater(t, r.ContentLength, int64(len(contents)))
		assert.Empty(t, r.TransferEncoding)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "true", r.FormValue(constants.UploadSharedField))

		file, header, err := r.FormFile(constants.UploadFieldName)
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "report.csv", header.Filename)
		uploaded, _ := io.ReadAll(file)
		assert.Equal(t, contents, string(uploaded))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	var last, total int64
	calls := 0
	resp, err := UploadFile(
		"t1",
		server.URL,
		path,
		map[string]string{constants.UploadSharedField: "true"},
		func(sent, size int64) {
			assert.GreaterOrEqual(t, sent, last)
			last, total = sent, size
			calls++
		})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Positive(t, calls)
	assert.Equal(t, int64(len(contents)), last)
	assert.Equal(t, int64(len(contents)), total)
}

func TestUploadMissingFile(t *testing.T) {
	_, err := UploadFile("", "http://localhost", "/does/not/exist", nil, nil)
	assert.Error(t, err)
}
