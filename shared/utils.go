package shared

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

func ReadableFileSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}

	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "kMGT"[exp])
}

// CreateNewSaveName appends (or increments) a numeric suffix before the file
// extension, i.e. "report.csv" -> "report_1.csv" -> "report_2.csv".
func CreateNewSaveName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	idx := strings.LastIndex(base, "_")
	if idx >= 0 {
		if n, err := strconv.Atoi(base[idx+1:]); err == nil {
			return fmt.Sprintf("%s_%d%s", base[:idx], n+1, ext)
		}
	}

	return fmt.Sprintf("%s_1%s", base, ext)
}

// EscapeString prevents user-controlled text from being rendered as
// emphasis or code when it's shown in a form note.
func EscapeString(s string) string {
	return markdownEscaper.Replace(s)
}

var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"*", "\\*",
	"_", "\\_",
	"`", "\\`",
)

// FormatValue renders a table cell for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
