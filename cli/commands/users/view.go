package users

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"datashare/cli/commands/internal"
	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/shared"
)

type Model struct {
	ViewRequest internal.ViewRequest
	Next        router.Location

	init     bool
	quitting bool
	pending  tea.Cmd
	table    table.Model
	spinner  spinner.Model
	status   Status
}

type Status struct {
	Processing bool
	Message    string
	Success    string
	Err        error
}

type actionDoneMsg struct {
	success string
	err     error
}

const Help = `
n -> new user | e -> edit | x -> delete | b -> back | q -> quit`

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.pending)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.status.Processing {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case actionDoneMsg:
		m.status = Status{Success: msg.success, Err: msg.err}
		if msg.err != nil {
			m.status.Success = ""
		}

		if !globals.Session.IsAuthenticated() {
			m.quitting = true
			return m, tea.Quit
		}

		m.refreshRows()
		return m, nil
	case tea.KeyMsg:
		if m.status.Processing {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		m.status = Status{}
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "b", "esc":
			m.quitting = true
			m.Next = router.To(router.Dashboard)
			return m, tea.Quit
		case "n":
			return m.newRequest(internal.UserFormView, internal.NewUserRequest, shared.User{})
		}

		user, ok := m.selected()
		if !ok {
			break
		}

		switch msg.String() {
		case "e":
			return m.newRequest(internal.UserFormView, internal.EditUserRequest, user)
		case "x":
			if current, ok := globals.Session.User(); ok && current.ID == user.ID {
				m.status.Err = errors.New("you can't delete your own account")
				return m, nil
			}
			return m.newRequest(internal.ConfirmationView, internal.DeleteUserRequest, user)
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting || m.ViewRequest.View > internal.NullView {
		return ""
	}

	usersView := styles.BaseStyle.Render(m.table.View())

	if m.status.Err != nil {
		usersView += "\n✗ Error: " + m.status.Err.Error()
	} else if len(m.status.Success) > 0 {
		usersView += "\n" + styles.SuccessStyle.Render(m.status.Success)
	} else if m.status.Processing {
		usersView += "\n" + m.spinner.View() + " " + m.status.Message
	} else {
		total := globals.Users.TotalUsers()
		online := globals.Users.OnlineUsers()
		usersView += fmt.Sprintf("\n %d users, %d online, %s, %s",
			total,
			online,
			styles.OfflineStyle.Render(fmt.Sprintf("%d offline", total-online)),
			styles.AdminStyle.Render(fmt.Sprintf("%d admins", globals.Users.AdminUsers())))
	}

	return styles.BoldStyle.Render("DataShare > Users") + "\n" +
		usersView + "\n" +
		styles.HelpStyle.Render(Help)
}

func (m Model) selected() (shared.User, bool) {
	users := globals.Users.Users()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(users) {
		return shared.User{}, false
	}

	return users[cursor], true
}

func (m *Model) refreshRows() {
	m.table.SetRows(CreateUserRows(globals.Users.Users()))
	m.table.SetCursor(m.table.Cursor())
}

func (m Model) newRequest(
	view internal.View,
	req internal.RequestType,
	user shared.User,
) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View: view,
		Type: req,
		ID:   user.ID,
		Name: user.Username,
	}

	return m, tea.Quit
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}

	return errors.New(globals.Users.Err())
}

func createUser(newUser shared.NewUser) tea.Cmd {
	return func() tea.Msg {
		_, err := globals.Users.Create(newUser)
		return actionDoneMsg{
			success: fmt.Sprintf("Created user '%s'", newUser.Username),
			err:     storeErr(err),
		}
	}
}

func updateUser(id int, name string, update shared.UserUpdate) tea.Cmd {
	return func() tea.Msg {
		_, err := globals.Users.Update(id, update)
		return actionDoneMsg{
			success: fmt.Sprintf("Updated user '%s'", name),
			err:     storeErr(err),
		}
	}
}

func deleteUser(id int, name string) tea.Cmd {
	return func() tea.Msg {
		err := globals.Users.Delete(id)
		return actionDoneMsg{
			success: fmt.Sprintf("Deleted user '%s'", name),
			err:     storeErr(err),
		}
	}
}
