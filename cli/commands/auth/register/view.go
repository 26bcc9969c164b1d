package register

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
)

func validateEmail(s string) error {
	if len(s) == 0 {
		// Email is optional
		return nil
	}

	if strings.Contains(s, "@") && strings.Contains(s, ".") {
		return nil
	}

	return errors.New("invalid email")
}

// ShowRegisterModel creates a new account, then continues on to the login
// view so that the user can log in with it.
func ShowRegisterModel(_ router.Location) router.Location {
	var username string
	var email string
	var password string

	var runFunc func(errMsgs ...string) error
	runFunc = func(errMsgs ...string) error {
		title := huh.NewNote().Title(utils.GenerateTitle("Sign Up"))
		if len(errMsgs) > 0 {
			title.Description(styles.ErrStyle.Render(errMsgs[0]))
		}

		err := huh.NewForm(
			huh.NewGroup(
				title,
				huh.NewInput().Title("Username").
					Value(&username).
					Validate(func(s string) error {
						if len(strings.TrimSpace(s)) == 0 {
							return errors.New("username is required")
						}

						return nil
					}),
				huh.NewInput().Title("Email").
					Description("Optional").
					Value(&email).
					Validate(validateEmail),
				huh.NewInput().Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(func(s string) error {
						if len(s) == 0 {
							return errors.New("password is required")
						}

						return nil
					}),
				huh.NewInput().Title("Confirm Password").
					EchoMode(huh.EchoModePassword).
					Validate(func(s string) error {
						if s != password {
							return errors.New("passwords do not match")
						}

						return nil
					}),
				huh.NewConfirm().Affirmative("Submit").Negative(""),
			),
		).WithTheme(styles.Theme).WithShowHelp(true).Run()

		if err != nil {
			return err
		}

		var registerErr error
		var message string
		_ = spinner.New().Title("Creating account...").Action(func() {
			resp, err := globals.Session.Register(username, password, email)
			registerErr = err
			message = resp.Message
		}).Run()

		if registerErr != nil {
			return runFunc(globals.Session.Err())
		}

		if len(message) > 0 {
			styles.PrintSuccess(message)
		}

		return nil
	}

	err := runFunc()
	if errors.Is(err, huh.ErrUserAborted) {
		return router.Location{}
	}
	utils.HandleCLIError("error signing up", err)

	return router.To(router.Login)
}
