package logout

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"

	"datashare/cli/globals"
)

func ShowLogoutModel() {
	_ = spinner.New().Title("Logging out...").Action(
		func() {
			globals.Session.Logout()
		}).Run()

	fmt.Println("You are logged out")
}
