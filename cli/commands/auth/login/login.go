package login

import (
	"os"

	"datashare/cli/utils"
)

// UsernameFlag returns the value of -u/--user, if one was passed.
func UsernameFlag() string {
	var username string
	utils.StrFlag(&username, "user", "", os.Args)
	return username
}
