package endpoints

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	server := "http://localhost:5001/"

	assert.Equal(t,
		"http://localhost:5001/api/auth/login",
		Login.Format(server))
	assert.Equal(t,
		"http://localhost:5001/api/files/12/rename",
		RenameFile.Format(server, "12"))
	assert.Equal(t,
		"http://localhost:5001/api/files/",
		File.Format(server))
}

func TestFormatEscapesArgs(t *testing.T) {
	formatted := TableData.Format("http://x", "sales/2024 q1")
	assert.Equal(t, "http://x/api/data/tables/sales%2F2024%20q1/data", formatted)
}

func TestWithQuery(t *testing.T) {
	query := url.Values{}
	query.Set("format", "csv")

	assert.Equal(t,
		"http://x/api/data/tables/orders/export?format=csv",
		TableExport.WithQuery("http://x", query, "orders"))
	assert.Equal(t,
		"http://x/api/files",
		Files.WithQuery("http://x", nil))
}
