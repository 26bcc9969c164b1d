package main

import (
	"os"

	"datashare/cli/commands"
	"datashare/cli/globals"
	"datashare/cli/utils"
)

func main() {
	err := globals.Init()
	utils.HandleCLIError("Error initializing CLI tool", err)

	commands.Entrypoint(os.Args)
}
