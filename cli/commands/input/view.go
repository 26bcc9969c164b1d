package input

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"datashare/cli/commands/internal"
	"datashare/cli/styles"
)

// RunModel prompts for a single line of text, prefilled with value. If
// required is set, an empty value is rejected by the form.
func RunModel(
	req internal.RequestType,
	title, desc, value string,
	required bool,
) (internal.Event, error) {
	newValue := value
	var confirmed bool

	textInput := huh.NewInput().
		Title(title).
		Description(desc).
		Placeholder(value).
		Value(&newValue)

	if required {
		textInput.Validate(func(s string) error {
			if len(strings.TrimSpace(s)) == 0 {
				return errors.New("value cannot be empty")
			}

			return nil
		})
	}

	err := huh.NewForm(huh.NewGroup(
		textInput,
		huh.NewConfirm().
			Affirmative("Submit").
			Negative("Cancel").
			Value(&confirmed),
	)).WithTheme(styles.Theme).Run()

	if confirmed {
		return internal.Event{
			Value:  strings.TrimSpace(newValue),
			Status: internal.StatusOk,
			Type:   req,
		}, err
	}

	return internal.Canceled(req), err
}
