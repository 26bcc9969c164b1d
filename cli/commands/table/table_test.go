package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datashare/shared"
)

func TestColumnNames(t *testing.T) {
	meta := shared.Table{Columns: []shared.Column{{Name: "id"}, {Name: "name"}}}
	rows := []shared.Row{{"name": "a", "id": float64(1), "extra": true}}

	assert.Equal(t, []string{"id", "name"}, ColumnNames(meta, rows))
	assert.Equal(t, []string{"extra", "id", "name"}, ColumnNames(shared.Table{}, rows))
	assert.Empty(t, ColumnNames(shared.Table{}, nil))
}

func TestCreateDataRows(t *testing.T) {
	rows := CreateDataRows(
		[]string{"id", "name", "price", "deleted_at"},
		[]shared.Row{
			{"id": float64(3), "name": "widget", "price": 9.5, "deleted_at": nil},
			{"id": float64(4)},
		})

	assert.Equal(t, []string{"3", "widget", "9.5", "NULL"}, []string(rows[0]))
	assert.Equal(t, []string{"4", "NULL", "NULL", "NULL"}, []string(rows[1]))
}

func TestDescribePage(t *testing.T) {
	pagination := shared.Pagination{Page: 2, PerPage: 10, Total: 35, RealTotal: 120, Pages: 4}

	assert.Equal(t, "Page 2 of 4 | 35 rows",
		DescribePage(pagination, shared.TableQuery{}))
	assert.Equal(t, "Page 2 of 4 | 35 rows matching 'bob' (of 120) | sorted by id desc",
		DescribePage(pagination, shared.TableQuery{Search: "bob", SortBy: "id", SortOrder: shared.SortDesc}))
	assert.Equal(t, "Page 1 of 1 | 0 rows",
		DescribePage(shared.Pagination{}, shared.TableQuery{}))
}
