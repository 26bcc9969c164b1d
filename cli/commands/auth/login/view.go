package login

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
)

func required(field string) func(string) error {
	return func(s string) error {
		if len(strings.TrimSpace(s)) == 0 {
			return fmt.Errorf("%s is required", field)
		}

		return nil
	}
}

// ShowLoginModel prompts for credentials until the user logs in or aborts.
// A username passed with -u/--user skips the form and reads the password
// from the terminal instead.
func ShowLoginModel(_ router.Location) router.Location {
	if username := UsernameFlag(); len(username) > 0 {
		return loginNonInteractive(username)
	}

	var username string
	var password string

	var runFunc func(errorMessages ...string) error
	runFunc = func(errMsgs ...string) error {
		title := huh.NewNote().Title(utils.GenerateTitle("Login"))
		if len(errMsgs) > 0 {
			title.Description(styles.ErrStyle.Render(errMsgs[0]))
		}

		err := huh.NewForm(
			huh.NewGroup(
				title,
				huh.NewInput().Title("Username").
					Value(&username).
					Validate(required("username")),
				huh.NewInput().Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(required("password")),
				huh.NewConfirm().Affirmative("Log In").Negative(""),
			),
		).WithTheme(styles.Theme).WithShowHelp(true).Run()

		if err != nil {
			return err
		}

		var loginErr error
		_ = spinner.New().Title("Logging in...").Action(func() {
			_, loginErr = globals.Session.Login(username, password)
		}).Run()

		if loginErr != nil {
			return runFunc(globals.Session.Err())
		}

		return nil
	}

	err := runFunc()
	if errors.Is(err, huh.ErrUserAborted) {
		return router.Location{}
	}
	utils.HandleCLIError("error logging in", err)

	return router.To(router.Dashboard)
}

func loginNonInteractive(username string) router.Location {
	password, err := utils.RequestPassword()
	utils.HandleCLIError("error reading password", err)

	_, err = globals.Session.Login(username, string(password))
	if err != nil {
		styles.PrintErrStr(globals.Session.Err())
		return router.Location{}
	}

	styles.PrintSuccess(fmt.Sprintf("Logged in as %s", username))
	return router.Location{}
}
