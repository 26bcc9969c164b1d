package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadableFileSize(t *testing.T) {
	assert.Equal(t, "512 B", ReadableFileSize(512))
	assert.Equal(t, "1.0 kB", ReadableFileSize(1024))
	assert.Equal(t, "1.5 MB", ReadableFileSize(1024*1024*3/2))
}

func TestCreateNewSaveName(t *testing.T) {
	assert.Equal(t, "report_1.csv", CreateNewSaveName("report.csv"))
	assert.Equal(t, "report_2.csv", CreateNewSaveName("report_1.csv"))
	assert.Equal(t, "my_file_1.txt", CreateNewSaveName("my_file.txt"))
	assert.Equal(t, "README_1", CreateNewSaveName("README"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NULL", FormatValue(nil))
	assert.Equal(t, "42", FormatValue(float64(42)))
	assert.Equal(t, "4.25", FormatValue(4.25))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "abc", FormatValue("abc"))
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleUser}.IsAdmin())
}

func TestExportFormatValid(t *testing.T) {
	assert.True(t, ExportCSV.Valid())
	assert.True(t, ExportExcel.Valid())
	assert.False(t, ExportFormat("pdf").Valid())
}

func TestEscapeString(t *testing.T) {
	assert.Equal(t, `my\_file\*.txt`, EscapeString("my_file*.txt"))
	assert.Equal(t, "plain name", EscapeString("plain name"))
	assert.Equal(t, "\\`x\\`", EscapeString("`x`"))
}

func TestUserPatchApplyPresentKeys(t *testing.T) {
	user := User{ID: 2, Username: "alice", Email: "alice@example.com", Role: RoleUser, Status: "online"}

	var patch UserPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"email":"","role":"admin"}`), &patch))

	updated := patch.Apply(user)
	assert.Empty(t, updated.Email)
	assert.Equal(t, RoleAdmin, updated.Role)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "online", updated.Status)
}
