package data

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashare/cli/api"
	"datashare/shared"
)

func setup(t *testing.T, handler http.HandlerFunc) *Store {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(api.InitContext(server.URL, "t1"))
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestFetchTables(t *testing.T) {
	store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/data/tables", r.URL.Path)
		reply(w, http.StatusOK, shared.TablesResponse{Tables: []shared.Table{
			{ID: 1, TableName: "orders", DisplayName: "Orders"},
			{ID: 2, TableName: "customers", DisplayName: "Customers"},
		}})
	})

	tables, err := store.FetchTables()
	require.NoError(t, err)
	assert.Len(t, tables, 2)
	assert.Equal(t, 2, store.TotalTables())
	assert.False(t, store.HasError())
}

func TestFetchTableMetadata(t *testing.T) {
	store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/data/tables/orders" {
			reply(w, http.StatusNotFound, shared.ErrorResponse{Error: "table does not exist"})
			return
		}

		reply(w, http.StatusOK, shared.TableResponse{Table: shared.Table{
			TableName: "orders",
			Columns:   []shared.Column{{Name: "id", Type: "int"}, {Name: "total", Type: "decimal"}},
		}})
	})

	table, err := store.FetchTableMetadata("orders")
	require.NoError(t, err)
	assert.Len(t, table.Columns, 2)

	current, ok := store.CurrentTable()
	require.True(t, ok)
	assert.Equal(t, "orders", current.TableName)

	_, err = store.FetchTableMetadata("missing")
	assert.Error(t, err)
	assert.True(t, store.HasError())
	assert.Equal(t, "table does not exist", store.Err())
}

func TestFetchTableData(t *testing.T) {
	var lastQuery string
	store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.RawQuery
		reply(w, http.StatusOK, map[string]any{
			"data":       []map[string]any{{"id": 11}, {"id": 12}},
			"pagination": map[string]any{"page": 2, "per_page": 10, "total": 12, "pages": 2},
		})
	})

	resp, err := store.FetchTableData("orders", shared.TableQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "page=2&per_page=10", lastQuery)
	assert.Equal(t, 2, store.Pagination().Page)
	assert.Len(t, store.TableData(), 2)

	_, err = store.FetchTableData("orders", shared.TableQuery{SortBy: "id", SortOrder: shared.SortDesc, Search: "1"})
	require.NoError(t, err)
	assert.Equal(t, "page=1&per_page=10&search=1&sort_by=id&sort_order=desc", lastQuery)
}

func TestExport(t *testing.T) {
	store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/data/tables/orders/export", r.URL.Path)
		if r.URL.Query().Get("format") == "csv" {
			w.Header().Set("Content-Disposition", `attachment; filename="orders_20240101.csv"`)
		}
		_, _ = w.Write([]byte("id\n1\n"))
	})

	dir := t.TempDir()

	path, err := store.Export("orders", shared.ExportCSV, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orders_20240101.csv"), path)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(contents))

	path, err = store.Export("orders", shared.ExportExcel, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orders_export.excel"), path)
}

func TestExportInvalidFormat(t *testing.T) {
	store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid format")
	})

	_, err := store.Export("orders", shared.ExportFormat("pdf"), t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.True(t, store.HasError())
	assert.False(t, store.Loading())
}

func TestExportServerError(t *testing.T) {
	store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := store.Export("orders", shared.ExportCSV, t.TempDir())
	assert.Error(t, err)
	assert.Equal(t, "Failed to export data", store.Err())
}
