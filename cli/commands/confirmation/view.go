package confirmation

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"datashare/cli/commands/internal"
	"datashare/cli/styles"
)

func GenConfirmMsg(req internal.RequestType, name string) (string, string) {
	switch req {
	case internal.DeleteFileRequest:
		return "Delete File",
			fmt.Sprintf("Are you sure you want to delete '%s'?\n"+
				"This cannot be undone.", name)
	case internal.DeleteUserRequest:
		return "Delete User",
			fmt.Sprintf("Are you sure you want to delete user '%s'?\n"+
				"This cannot be undone.", name)
	default:
		return "Confirm", fmt.Sprintf("Continue with '%s'?", name)
	}
}

// RunModel asks the user to confirm a request against the item with the
// given id and name.
func RunModel(req internal.RequestType, id int, name string) (internal.Event, error) {
	var confirmed bool
	confirm := huh.NewConfirm().Affirmative("Yes").Negative("No").Value(&confirmed)

	title, desc := GenConfirmMsg(req, name)
	confirm.Title(title)
	confirm.Description(desc)

	theme := styles.Theme
	if req == internal.DeleteFileRequest || req == internal.DeleteUserRequest {
		theme = styles.DestructiveTheme()
	}

	err := huh.NewForm(huh.NewGroup(confirm)).WithTheme(theme).Run()
	if confirmed {
		return internal.Event{
			Status: internal.StatusOk,
			Type:   req,
			ID:     id,
			Value:  name,
		}, err
	}

	return internal.Canceled(req), err
}
