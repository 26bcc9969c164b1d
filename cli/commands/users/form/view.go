package form

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"datashare/cli/commands/internal"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared"
)

func roleOptions() []huh.Option[shared.Role] {
	return []huh.Option[shared.Role]{
		huh.NewOption("User", shared.RoleUser),
		huh.NewOption("Admin", shared.RoleAdmin),
	}
}

func required(field string) func(string) error {
	return func(s string) error {
		if len(strings.TrimSpace(s)) == 0 {
			return errors.New(field + " is required")
		}

		return nil
	}
}

func validateEmail(s string) error {
	if len(s) == 0 || (strings.Contains(s, "@") && strings.Contains(s, ".")) {
		return nil
	}

	return errors.New("invalid email")
}

// RunNewUserModel asks for the details of a new account. Event.Data holds
// the resulting shared.NewUser.
func RunNewUserModel() (internal.Event, error) {
	newUser := shared.NewUser{Role: shared.RoleUser}
	var confirmed bool

	err := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(utils.GenerateTitle("New User")),
		huh.NewInput().Title("Username").
			Value(&newUser.Username).
			Validate(required("username")),
		huh.NewInput().Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&newUser.Password).
			Validate(required("password")),
		huh.NewInput().Title("Email").
			Description("Optional").
			Value(&newUser.Email).
			Validate(validateEmail),
		huh.NewSelect[shared.Role]().
			Title("Role").
			Options(roleOptions()...).
			Value(&newUser.Role),
		huh.NewConfirm().
			Affirmative("Create").
			Negative("Cancel").
			Value(&confirmed),
	)).WithTheme(styles.Theme).Run()

	if err != nil || !confirmed {
		return internal.Canceled(internal.NewUserRequest), err
	}

	newUser.Username = strings.TrimSpace(newUser.Username)
	newUser.Email = strings.TrimSpace(newUser.Email)
	return internal.Event{
		Status: internal.StatusOk,
		Type:   internal.NewUserRequest,
		Value:  newUser.Username,
		Data:   newUser,
	}, nil
}

// Diff builds an update containing only the fields that differ from user.
// An empty password leaves the password unchanged.
func Diff(user shared.User, email string, role shared.Role, password string) (shared.UserUpdate, bool) {
	var update shared.UserUpdate
	changed := false

	email = strings.TrimSpace(email)
	if email != user.Email {
		update.Email = &email
		changed = true
	}

	if role != user.Role {
		update.Role = &role
		changed = true
	}

	if len(password) > 0 {
		update.Password = &password
		changed = true
	}

	return update, changed
}

// RunEditUserModel edits an existing account's email, role and password.
// Event.Data holds a shared.UserUpdate with only the changed fields set.
func RunEditUserModel(user shared.User) (internal.Event, error) {
	email := user.Email
	role := user.Role
	var password string
	var confirmed bool

	err := huh.NewForm(huh.NewGroup(
		huh.NewNote().
			Title(utils.GenerateTitle("Edit User")).
			Description(shared.EscapeString(user.Username)),
		huh.NewInput().Title("Email").
			Value(&email).
			Validate(validateEmail),
		huh.NewSelect[shared.Role]().
			Title("Role").
			Options(roleOptions()...).
			Value(&role),
		huh.NewInput().Title("New Password").
			Description("Leave blank to keep the current password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
		huh.NewConfirm().
			Affirmative("Save").
			Negative("Cancel").
			Value(&confirmed),
	)).WithTheme(styles.Theme).Run()

	if err != nil || !confirmed {
		return internal.Canceled(internal.EditUserRequest), err
	}

	update, changed := Diff(user, email, role, password)
	if !changed {
		return internal.Canceled(internal.EditUserRequest), nil
	}

	return internal.Event{
		Status: internal.StatusOk,
		Type:   internal.EditUserRequest,
		ID:     user.ID,
		Value:  user.Username,
		Data:   update,
	}, nil
}
