package home

import (
	"github.com/charmbracelet/huh"

	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
)

const LoginAction = "Log In"
const SignUpAction = "Sign Up"
const CancelAction = "Cancel"

const welcome = `Share files and browse data tables with your team.
Log in to continue, or sign up for a new account.`

// ShowHomeModel is the landing view for users who aren't logged in.
func ShowHomeModel(_ router.Location) router.Location {
	var action string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(utils.GenerateTitle("Welcome")).
				Description(welcome),
			huh.NewSelect[string]().
				Options(huh.NewOptions(
					LoginAction,
					SignUpAction,
					CancelAction)...,
				).Value(&action),
		),
	).WithTheme(styles.Theme).WithShowHelp(true).Run()
	utils.HandleCLIError("", err)

	switch action {
	case LoginAction:
		return router.To(router.Login)
	case SignUpAction:
		return router.To(router.Register)
	default:
		return router.Location{}
	}
}
