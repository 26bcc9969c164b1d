package users

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	hspinner "github.com/charmbracelet/huh/spinner"

	"datashare/cli/commands/confirmation"
	"datashare/cli/commands/internal"
	"datashare/cli/commands/users/form"
	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared"
)

func CreateUserRows(users []shared.User) []table.Row {
	rows := []table.Row{}
	for _, user := range users {
		email := user.Email
		if len(email) == 0 {
			email = "-"
		}

		status := user.Status
		if len(status) == 0 {
			status = shared.StatusOffline
		}

		created := "-"
		if len(user.CreatedAt) >= 10 {
			created = user.CreatedAt[:10]
		}

		rows = append(rows, table.Row{
			fmt.Sprintf("%d", user.ID),
			user.Username,
			email,
			string(user.Role),
			status,
			created,
		})
	}

	return rows
}

func NewModel() Model {
	var fetchErr error
	_ = hspinner.New().Title("Fetching users...").Action(func() {
		if _, err := globals.Users.Fetch(); err != nil {
			fetchErr = errors.New(globals.Users.Err())
		}
	}).Run()

	if fetchErr != nil {
		log.Printf("users: %v\n", fetchErr)
	}

	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Username", Width: 12},
		{Title: "Email", Width: 15},
		{Title: "Role", Width: 6},
		{Title: "Status", Width: 8},
		{Title: "Created", Width: 10},
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		init:    true,
		table:   styles.NewTable(columns, CreateUserRows(globals.Users.Users()), 10),
		spinner: s,
		status:  Status{Err: fetchErr},
	}
}

func (m Model) handleEvent(event internal.Event) Model {
	m.pending = nil
	if event.Status != internal.StatusOk {
		return m
	}

	switch event.Type {
	case internal.NewUserRequest:
		newUser, ok := event.Data.(shared.NewUser)
		if !ok {
			return m
		}

		m.status = Status{
			Processing: true,
			Message:    fmt.Sprintf("Creating user '%s'...", newUser.Username),
		}
		m.pending = createUser(newUser)
	case internal.EditUserRequest:
		update, ok := event.Data.(shared.UserUpdate)
		if !ok {
			return m
		}

		m.status = Status{
			Processing: true,
			Message:    fmt.Sprintf("Updating user '%s'...", event.Value),
		}
		m.pending = updateUser(event.ID, event.Value, update)
	case internal.DeleteUserRequest:
		m.status = Status{
			Processing: true,
			Message:    fmt.Sprintf("Deleting user '%s'...", event.Value),
		}
		m.pending = deleteUser(event.ID, event.Value)
	}

	return m
}

func RunUsersModel(m Model, event internal.Event) (Model, error) {
	if !m.init {
		m = NewModel()
	}

	m.ViewRequest = internal.ViewRequest{}
	m = m.handleEvent(event)
	m.refreshRows()

	model, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, err
	}

	return model.(Model), nil
}

func findUser(id int) (shared.User, bool) {
	for _, user := range globals.Users.Users() {
		if user.ID == id {
			return user, true
		}
	}

	return shared.User{}, false
}

// loadUser re-reads a user before it's edited so the form starts from the
// server's current values.
func loadUser(id int) (shared.User, error) {
	if _, ok := findUser(id); !ok {
		return shared.User{}, fmt.Errorf("user %d not found", id)
	}

	var user shared.User
	var err error
	_ = hspinner.New().Title("Loading user...").Action(func() {
		user, err = globals.Users.Refresh(id)
	}).Run()

	if err != nil {
		return shared.User{}, errors.New(globals.Users.Err())
	}

	return user, nil
}

func runSubview(req internal.ViewRequest) (internal.Event, error) {
	switch req.View {
	case internal.UserFormView:
		if req.Type == internal.NewUserRequest {
			return form.RunNewUserModel()
		}

		user, err := loadUser(req.ID)
		if err != nil {
			return internal.Event{}, err
		}

		return form.RunEditUserModel(user)
	case internal.ConfirmationView:
		return confirmation.RunModel(req.Type, req.ID, req.Name)
	}

	return internal.Event{}, nil
}

// ShowUsersModel runs the user management table. Only reachable by admins.
func ShowUsersModel(_ router.Location) router.Location {
	m := NewModel()
	if !globals.Session.IsAuthenticated() {
		return router.Location{}
	}

	m, err := RunUsersModel(m, internal.Event{})
	for err == nil && m.ViewRequest.View > internal.NullView {
		event, subviewErr := runSubview(m.ViewRequest)
		if errors.Is(subviewErr, huh.ErrUserAborted) {
			event = internal.Canceled(m.ViewRequest.Type)
		} else if subviewErr != nil {
			m.status = Status{Err: subviewErr}
			event = internal.Event{}
		}

		if !globals.Session.IsAuthenticated() {
			return router.Location{}
		}

		m, err = RunUsersModel(m, event)
	}

	utils.HandleCLIError("Error in users view", err)
	return m.Next
}
