package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashare/cli/utils"
	"datashare/shared"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestContext(t *testing.T, handler http.HandlerFunc) *Context {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return InitContext(server.URL, "t1")
}

func TestLogin(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var login shared.Login
		require.NoError(t, json.NewDecoder(r.Body).Decode(&login))
		assert.Equal(t, "alice", login.Username)
		assert.Equal(t, "pw", login.Password)

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "t2",
			"user":         map[string]any{"id": 1, "username": "alice", "role": "user"},
		})
	})

	resp, err := ctx.Login(shared.Login{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "t2", resp.AccessToken)
	assert.Equal(t, 1, resp.User.ID)
	assert.Equal(t, shared.RoleUser, resp.User.Role)

	// Storing the token is left to the caller
	assert.Equal(t, "t1", ctx.Token())
}

func TestServerErrorMessage(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, shared.ErrorResponse{Error: "username exists"})
	})

	_, err := ctx.Register(shared.Register{Username: "alice", Password: "pw"})

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "username exists", httpErr.Message)
}

func TestUnauthorizedHook(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, shared.ErrorResponse{Error: "token expired"})
	})

	calls := 0
	ctx.OnUnauthorized(func() { calls++ })

	_, err := ctx.GetCurrentUser()
	assert.True(t, utils.IsUnauthorized(err))
	assert.Equal(t, 1, calls)

	_, err = ctx.DownloadFile(3)
	assert.True(t, utils.IsUnauthorized(err))
	assert.Equal(t, 2, calls)
}

func TestHookNotCalledForOtherErrors(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, shared.ErrorResponse{Error: "admins only"})
	})

	ctx.OnUnauthorized(func() { t.Fatal("unexpected unauthorized hook") })

	_, err := ctx.GetUsers()
	assert.EqualError(t, err, "403: admins only")
}

func TestFileLists(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files", r.URL.Path)

		name := "mine.txt"
		if r.URL.Query().Get("shared") == "true" {
			name = "shared.txt"
		} else if r.URL.Query().Get("all") == "true" {
			name = "all.txt"
		}

		writeJSON(w, http.StatusOK, shared.FilesResponse{
			Files: []shared.File{{ID: 1, Filename: name}},
		})
	})

	files, err := ctx.GetFiles()
	require.NoError(t, err)
	assert.Equal(t, "mine.txt", files[0].Filename)

	files, err = ctx.GetSharedFiles()
	require.NoError(t, err)
	assert.Equal(t, "shared.txt", files[0].Filename)

	files, err = ctx.GetAllFiles()
	require.NoError(t, err)
	assert.Equal(t, "all.txt", files[0].Filename)
}

func TestFileMutations(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "PUT /api/files/4/share":
			var share shared.ShareFile
			require.NoError(t, json.NewDecoder(r.Body).Decode(&share))
			writeJSON(w, http.StatusOK, shared.ShareFileResponse{IsShared: share.IsShared})
		case "PUT /api/files/4/rename":
			var rename shared.RenameFile
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rename))
			writeJSON(w, http.StatusOK, shared.FileResponse{
				File: shared.File{ID: 4, Filename: rename.Filename},
			})
		case "POST /api/files/4/copy":
			writeJSON(w, http.StatusCreated, shared.FileResponse{
				File: shared.File{ID: 5, Filename: "copy.txt"},
			})
		case "DELETE /api/files/4":
			writeJSON(w, http.StatusOK, shared.MessageResponse{Message: "deleted"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	share, err := ctx.ShareFile(4, true)
	require.NoError(t, err)
	assert.True(t, share.IsShared)

	renamed, err := ctx.RenameFile(4, "b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b.txt", renamed.File.Filename)

	copied, err := ctx.CopyFile(4)
	require.NoError(t, err)
	assert.Equal(t, 5, copied.File.ID)

	assert.NoError(t, ctx.DeleteFile(4))
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "false", r.FormValue("is_shared"))

		writeJSON(w, http.StatusCreated, shared.FilesResponse{
			Message: "uploaded",
			Files:   []shared.File{{ID: 9, Filename: "a.txt", Size: 5}},
		})
	})

	var sent int64
	resp, err := ctx.UploadFile(path, false, func(s, _ int64) { sent = s })
	require.NoError(t, err)
	assert.Equal(t, int64(5), sent)
	assert.Equal(t, 9, resp.Files[0].ID)
}

func TestDownload(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/data/tables/orders/export", r.URL.Path)
		assert.Equal(t, "excel", r.URL.Query().Get("format"))
		w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
		_, _ = w.Write([]byte("binary"))
	})

	download, err := ctx.ExportTable("orders", shared.ExportExcel)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(download.Contents))
	assert.Equal(t, `attachment; filename="orders.xlsx"`, download.Disposition)
}

func TestTableQueryValues(t *testing.T) {
	values := TableQueryValues(shared.TableQuery{})
	assert.Equal(t, "page=1&per_page=10", values.Encode())

	values = TableQueryValues(shared.TableQuery{Page: 2, PerPage: 25, SortBy: "id"})
	assert.Equal(t, "page=2&per_page=25&sort_by=id&sort_order=asc", values.Encode())

	values = TableQueryValues(shared.TableQuery{
		SortBy:    "name",
		SortOrder: shared.SortDesc,
		Search:    "bob",
	})
	assert.Equal(t, "desc", values.Get("sort_order"))
	assert.Equal(t, "bob", values.Get("search"))

	values = TableQueryValues(shared.TableQuery{SortOrder: shared.SortDesc})
	assert.Empty(t, values.Get("sort_order"))
	assert.False(t, values.Has("search"))
}

func TestTableData(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/data/tables/orders/data", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))

		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{{"id": 1, "name": "x"}},
			"pagination": map[string]any{
				"page": 3, "per_page": 10, "total": 21, "pages": 3,
			},
		})
	})

	resp, err := ctx.GetTableData("orders", shared.TableQuery{Page: 3})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "x", resp.Data[0]["name"])
	assert.Equal(t, 21, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.Pages)
}

func TestUpdateUserOmitsUnsetFields(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/2", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"role": "admin"}, body)

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "updated",
			"user":    map[string]any{"id": 2, "role": "admin", "email": ""},
		})
	})

	role := shared.RoleAdmin
	patch, err := ctx.UpdateUser(2, shared.UserUpdate{Role: &role})
	require.NoError(t, err)
	require.NotNil(t, patch.Role)
	assert.Equal(t, shared.RoleAdmin, *patch.Role)
	require.NotNil(t, patch.Email)
	assert.Empty(t, *patch.Email)
	assert.Nil(t, patch.Username)
}

func TestGetUser(t *testing.T) {
	ctx := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/2", r.URL.Path)

		writeJSON(w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": 2, "username": "alice", "role": "user", "status": "online"},
		})
	})

	user, err := ctx.GetUser(2)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, shared.StatusOnline, user.Status)
}
