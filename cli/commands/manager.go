package commands

import (
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"datashare/cli/commands/auth/login"
	"datashare/cli/commands/auth/logout"
	"datashare/cli/commands/auth/register"
	"datashare/cli/commands/dashboard"
	"datashare/cli/commands/data"
	"datashare/cli/commands/files"
	"datashare/cli/commands/home"
	"datashare/cli/commands/table"
	"datashare/cli/commands/users"
	"datashare/cli/devproxy"
	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared/constants"
)

type Command string

const (
	Login     Command = "login"
	Signup    Command = "signup"
	Register  Command = "register"
	Logout    Command = "logout"
	Dashboard Command = "dashboard"
	Files     Command = "files"
	Users     Command = "users"
	Data      Command = "data"
	Table     Command = "table"
	Open      Command = "open"
	Proxy     Command = "proxy"
	Version   Command = "version"
	Help      Command = "help"
)

// ViewFunc runs a view for a location and returns where to go next. A zero
// Location ends the session.
type ViewFunc func(router.Location) router.Location

var Views = map[router.Name]ViewFunc{
	router.Home:      home.ShowHomeModel,
	router.Login:     login.ShowLoginModel,
	router.Register:  register.ShowRegisterModel,
	router.Dashboard: dashboard.ShowDashboardModel,
	router.Files:     files.ShowFilesModel,
	router.Users:     users.ShowUsersModel,
	router.Data:      data.ShowDataModel,
	router.Table:     table.ShowTableModel,
}

var CommandRoutes = map[Command]router.Name{
	Login:     router.Login,
	Signup:    router.Register,
	Register:  router.Register,
	Dashboard: router.Dashboard,
	Files:     router.Files,
	Users:     router.Users,
	Data:      router.Data,
}

// maxRedirects bounds the guard's redirect chain for a single navigation.
const maxRedirects = 5

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrMissingArg     = errors.New("missing argument")
)

var AuthHelp = []string{
	fmt.Sprintf("%s    | Create a new DataShare account (alias: %s)", Signup, Register),
	fmt.Sprintf("%s     | Log into your DataShare account\n"+
		"              - Example: datashare login -u alice", Login),
	fmt.Sprintf("%s    | Log out of your DataShare account", Logout),
}

var ActionHelp = []string{
	fmt.Sprintf("%s | Show an overview of your files and tables", Dashboard),
	fmt.Sprintf("%s     | Upload, share, preview and download files\n"+
		"              - Example: datashare files --shared", Files),
	fmt.Sprintf("%s      | Browse data tables", Data),
	fmt.Sprintf("%s     | Page through one data table\n"+
		"              - Example: datashare table orders\n"+
		"              - Example: datashare table orders --per-page 25", Table),
	fmt.Sprintf("%s     | Manage user accounts (admin only)", Users),
	fmt.Sprintf("%s      | Open a view by its path\n"+
		"              - Example: datashare open /data/orders", Open),
}

var OtherHelp = []string{
	fmt.Sprintf("%s     | Run the development proxy for the web frontend\n"+
		"              - Example: datashare proxy --listen :5173", Proxy),
	fmt.Sprintf("%s   | Print the CLI version", Version),
	fmt.Sprintf("%s      | Show this message", Help),
}

var CommandHelpStr = `
  %s`

func generateHelp() string {
	helpMsg := `
Usage: datashare <command> [args]

Running datashare with no command opens the dashboard, or the home menu if
you aren't logged in.
`

	sections := []struct {
		title string
		lines []string
	}{
		{"Auth Commands:", AuthHelp},
		{"Action Commands:", ActionHelp},
		{"Other Commands:", OtherHelp},
	}

	for _, section := range sections {
		helpMsg += "\n" + section.title
		for _, msg := range section.lines {
			helpMsg += fmt.Sprintf(CommandHelpStr, msg)
		}
		helpMsg += "\n"
	}

	return helpMsg
}

func printHelp() {
	fmt.Println(generateHelp())
}

// Resolve maps command line arguments (without the program name) to the
// location the CLI should start at. Commands that don't open a view return a
// zero Location.
func Resolve(args []string) (Command, router.Location, error) {
	if len(args) == 0 {
		return "", router.To(router.Home), nil
	}

	command := Command(args[0])
	if name, ok := CommandRoutes[command]; ok {
		return command, router.To(name), nil
	}

	switch command {
	case Table:
		if len(args) < 2 || len(args[1]) == 0 || args[1][0] == '-' {
			return command, router.Location{}, fmt.Errorf("%w: table name", ErrMissingArg)
		}

		return command, router.ToTable(args[1]), nil
	case Open:
		if len(args) < 2 {
			return command, router.Location{}, fmt.Errorf("%w: path", ErrMissingArg)
		}

		loc, ok := router.Match(args[1])
		if !ok {
			return command, router.Location{}, fmt.Errorf("no view matches '%s'", args[1])
		}

		return command, loc, nil
	case Logout, Proxy, Version, Help:
		return command, router.Location{}, nil
	}

	return command, router.Location{}, fmt.Errorf("%w '%s'", ErrInvalidCommand, command)
}

// Run navigates from start until a view exits. Each navigation passes through
// the router's guard, and a redirect raised during a view (an expired
// session) takes priority over the view's own choice of where to go next.
func Run(start router.Location) {
	loc := start
	redirects := 0
	for len(loc.Name) > 0 {
		decision := globals.Router.Navigate(loc)
		if decision.Redirect {
			log.Printf("Redirect %s -> %s\n", loc, decision.Location)
			if len(decision.Notice) > 0 {
				styles.PrintNotice(decision.Notice)
			}

			redirects++
			if redirects > maxRedirects {
				styles.PrintErrStr("-- Too many redirects, giving up")
				return
			}

			loc = decision.Location
			continue
		}

		redirects = 0
		view, ok := Views[decision.Location.Name]
		if !ok {
			styles.PrintErrStr(fmt.Sprintf("-- No view for '%s'", decision.Location))
			return
		}

		next := view(decision.Location)
		if pending, ok := globals.Router.TakeRedirect(); ok {
			log.Printf("Redirect %s -> %s\n", decision.Location, pending.Location)
			if len(pending.Notice) > 0 {
				styles.PrintNotice(pending.Notice)
			}

			next = pending.Location
		}

		loc = next
	}
}

func runProxy(args []string) {
	var addr string
	utils.StrFlag(&addr, "listen", globals.Config.ProxyAddr, args)

	fmt.Printf("Proxying %v on %s to %s\n", devproxy.Prefixes, addr, globals.Config.Server)
	err := devproxy.Run(addr, globals.Config.Server)
	utils.HandleCLIError("Error running proxy", err)
}

func runLogout() {
	if !globals.Session.IsAuthenticated() {
		fmt.Println("You are not logged in")
		return
	}

	logout.ShowLogoutModel()
}

// Entrypoint is the main entrypoint to the CLI
func Entrypoint(args []string) {
	if len(args) > 0 {
		args = args[1:]
	}

	command, start, err := Resolve(args)
	if err != nil {
		styles.PrintErrStr("-- " + err.Error())
		printHelp()
		return
	}

	switch command {
	case Help:
		printHelp()
		return
	case Version:
		fmt.Printf("datashare %s\n", constants.VERSION)
		return
	case Proxy:
		runProxy(args)
		return
	case Logout:
		runLogout()
		return
	case Files:
		var showShared bool
		utils.BoolFlag(&showShared, "shared", false, args)
		if showShared {
			files.StartList = files.SharedFiles
		}
	case Table:
		var perPage int
		utils.IntFlag(&perPage, "per-page", globals.Config.PerPage, args)
		globals.Config.PerPage = max(perPage, 1)
	}

	// Set up logging output (can't log to stdout while bubbletea is running)
	f, err := tea.LogToFile("debug.log", "debug")
	if err != nil {
		utils.HandleCLIError("Error setting up log file", err)
	}

	defer f.Close()

	Run(start)
}
