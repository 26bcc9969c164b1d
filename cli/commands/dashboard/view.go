package dashboard

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"datashare/cli/commands/auth/logout"
	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared"
)

type Action int

const (
	OpenFiles Action = iota
	OpenData
	OpenUsers
	LogOut
	Exit
)

// Summary is what the dashboard shows for the current user.
type Summary struct {
	User        shared.User
	Files       int
	SharedFiles int
	Tables      int
	Users       int
	OnlineUsers int
	Errors      []string
}

// FetchSummary loads the counts shown on the dashboard. Failures are
// collected rather than returned so that a partial dashboard can be shown.
func FetchSummary() Summary {
	summary := Summary{}
	summary.User, _ = globals.Session.User()

	record := func(err error, msg string) {
		if err != nil {
			log.Printf("dashboard: %s: %v\n", msg, err)
			summary.Errors = append(summary.Errors, msg)
		}
	}

	_, err := globals.Files.Fetch()
	record(err, globals.Files.Err())
	_, err = globals.Files.FetchShared()
	record(err, globals.Files.Err())
	_, err = globals.Data.FetchTables()
	record(err, globals.Data.Err())

	if globals.Session.IsAdmin() {
		_, err = globals.Users.Fetch()
		record(err, globals.Users.Err())
		summary.Users = globals.Users.TotalUsers()
		summary.OnlineUsers = globals.Users.OnlineUsers()
	}

	summary.Files = globals.Files.TotalFiles()
	summary.SharedFiles = globals.Files.TotalSharedFiles()
	summary.Tables = globals.Data.TotalTables()
	return summary
}

func (s Summary) String() string {
	var b strings.Builder
	role := string(s.User.Role)
	if s.User.IsAdmin() {
		role = styles.AdminStyle.Render(role)
	}

	fmt.Fprintf(&b, "User: %s (%s)\n", shared.EscapeString(s.User.Username), role)
	fmt.Fprintf(&b, "My Files: %d\n", s.Files)
	fmt.Fprintf(&b, "Shared Files: %d\n", s.SharedFiles)
	fmt.Fprintf(&b, "Data Tables: %d\n", s.Tables)

	if s.User.IsAdmin() {
		fmt.Fprintf(&b, "Users: %d (%d online)\n", s.Users, s.OnlineUsers)
	}

	for _, errMsg := range s.Errors {
		b.WriteString(styles.ErrStyle.Render("✗ "+shared.EscapeString(errMsg)) + "\n")
	}

	return b.String()
}

func generateSelectOptions(isAdmin bool) []huh.Option[Action] {
	options := []huh.Option[Action]{
		huh.NewOption("Files", OpenFiles),
		huh.NewOption("Data Tables", OpenData),
	}

	if isAdmin {
		options = append(options, huh.NewOption("Manage Users", OpenUsers))
	}

	return append(options,
		huh.NewOption("Log Out", LogOut),
		huh.NewOption("Exit", Exit))
}

func ShowDashboardModel(_ router.Location) router.Location {
	var summary Summary
	_ = spinner.New().Title("Loading dashboard...").Action(func() {
		summary = FetchSummary()
	}).Run()

	if !globals.Session.IsAuthenticated() {
		// Session expired while loading
		return router.Location{}
	}

	var action Action
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(utils.GenerateTitle("Dashboard")).
				Description(utils.GenerateDescriptionSection(
					"Overview",
					summary.String(), 24)),
			huh.NewSelect[Action]().
				Title("Go to").
				Options(generateSelectOptions(summary.User.IsAdmin())...).
				Value(&action),
		)).WithTheme(styles.Theme).Run()
	utils.HandleCLIError("Error displaying dashboard", err)

	switch action {
	case OpenFiles:
		return router.To(router.Files)
	case OpenData:
		return router.To(router.Data)
	case OpenUsers:
		return router.To(router.Users)
	case LogOut:
		logout.ShowLogoutModel()
		return router.To(router.Home)
	default:
		return router.Location{}
	}
}
