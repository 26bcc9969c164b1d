package utils

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"datashare/cli/styles"
	"datashare/shared"
)

var dispositionPattern = regexp.MustCompile(`filename="?([^";]+)"?`)

func readPassword() ([]byte, error) {
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	return pw, err
}

// RequestPassword prompts the user for a password without echoing it back to
// the terminal
func RequestPassword() ([]byte, error) {
	fmt.Fprint(os.Stderr, "Enter Password: ")
	return readPassword()
}

func CopyToFile(contents string, to string) error {
	return os.WriteFile(to, []byte(contents), 0600)
}

func CopyBytesToFile(contents []byte, to string) error {
	return os.WriteFile(to, contents, 0600)
}

// FilenameFromDisposition extracts the filename from a Content-Disposition
// header, returning fallback if the header is empty or has no filename. An
// RFC 2231 filename* parameter wins over a plain filename.
func FilenameFromDisposition(disposition, fallback string) string {
	if len(disposition) == 0 {
		return fallback
	}

	name := ""
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		name = params["filename"]
	} else if matches := dispositionPattern.FindStringSubmatch(disposition); len(matches) > 1 {
		name = matches[1]
	}

	name = filepath.Base(strings.TrimSpace(name))
	if len(name) == 0 || name == "." || name == "/" {
		return fallback
	}

	return name
}

// SaveToDir writes contents into dir under name, picking a new name instead of
// overwriting an existing file. Returns the path that was written.
func SaveToDir(dir, name string, contents []byte) (string, error) {
	if len(dir) == 0 {
		dir = "."
	}

	path := filepath.Join(dir, name)
	_, statErr := os.Stat(path)
	for statErr == nil {
		name = shared.CreateNewSaveName(name)
		path = filepath.Join(dir, name)
		_, statErr = os.Stat(path)
	}

	err := os.WriteFile(path, contents, 0644)
	if err != nil {
		return "", err
	}

	return path, nil
}

func GenerateTitle(title string) string {
	return styles.TitleStyle.Render(fmt.Sprintf("DataShare > %s", title))
}

// GenerateDescriptionSection renders a titled block of text for use in huh
// note descriptions, with a divider of the given width under the title.
func GenerateDescriptionSection(title, desc string, width int) string {
	divider := strings.Repeat("─", width)
	return fmt.Sprintf("%s\n%s\n%s", styles.BoldStyle.Render(title), divider, desc)
}

func StrFlag(strVar *string, name string, fallback string, args []string) {
	if len(*strVar) > 0 {
		// This var has already been set
		return
	}

	flagNameA := fmt.Sprintf("-%s", string(name[0]))
	flagNameB := fmt.Sprintf("--%s", name)

	for idx, arg := range args {
		if arg == flagNameA || arg == flagNameB {
			if idx+1 >= len(args) {
				// Invalid flag value
				break
			}
			*strVar = args[idx+1]
			return
		}
	}

	*strVar = fallback
}

func BoolFlag(boolVar *bool, name string, fallback bool, args []string) {
	if *boolVar {
		// This var has already been set
		return
	}

	flagNameA := fmt.Sprintf("-%s", string(name[0]))
	flagNameB := fmt.Sprintf("--%s", name)

	for _, arg := range args {
		if arg == flagNameA || arg == flagNameB {
			*boolVar = true
			return
		}
	}

	*boolVar = fallback
}

func IntFlag(intVar *int, name string, fallback int, args []string) {
	if *intVar != 0 {
		// This var has already been set
		return
	}

	flagNameA := fmt.Sprintf("-%s", string(name[0]))
	flagNameB := fmt.Sprintf("--%s", name)

	for idx, arg := range args {
		if arg == flagNameA || arg == flagNameB {
			if idx+1 >= len(args) {
				// Invalid flag value
				break
			}

			if val, err := strconv.Atoi(args[idx+1]); err == nil {
				*intVar = val
				return
			}
			break
		}
	}

	*intVar = fallback
}
