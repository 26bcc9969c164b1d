package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/shared"
)

type fakeSession struct {
	user     shared.User
	loggedIn bool
}

func (s *fakeSession) IsAuthenticated() bool { return s.loggedIn }
func (s *fakeSession) IsAdmin() bool         { return s.user.IsAdmin() }
func (s *fakeSession) Logout()               { s.loggedIn = false }

func (s *fakeSession) GetCurrentUser() (shared.User, error) {
	if !s.loggedIn {
		return shared.User{}, errors.New("unauthorized")
	}

	return s.user, nil
}

// withViews swaps in recording views for the duration of a test.
func withViews(t *testing.T, session router.Session, views map[router.Name]ViewFunc) {
	oldViews, oldRouter := Views, globals.Router
	Views = views
	globals.Router = router.New(session)
	t.Cleanup(func() {
		Views, globals.Router = oldViews, oldRouter
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		args     []string
		command  Command
		location router.Location
	}{
		{nil, "", router.To(router.Home)},
		{[]string{"login", "-u", "alice"}, Login, router.To(router.Login)},
		{[]string{"signup"}, Signup, router.To(router.Register)},
		{[]string{"register"}, Register, router.To(router.Register)},
		{[]string{"files"}, Files, router.To(router.Files)},
		{[]string{"users"}, Users, router.To(router.Users)},
		{[]string{"table", "orders", "--per-page", "25"}, Table, router.ToTable("orders")},
		{[]string{"open", "/data/orders"}, Open, router.ToTable("orders")},
		{[]string{"open", "dashboard"}, Open, router.To(router.Dashboard)},
		{[]string{"proxy", "--listen", ":8080"}, Proxy, router.Location{}},
		{[]string{"help"}, Help, router.Location{}},
	}

	for _, test := range tests {
		command, loc, err := Resolve(test.args)
		require.NoError(t, err, test.args)
		assert.Equal(t, test.command, command, test.args)
		assert.Equal(t, test.location, loc, test.args)
	}
}

func TestResolveErrors(t *testing.T) {
	_, _, err := Resolve([]string{"vault"})
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, _, err = Resolve([]string{"table"})
	assert.ErrorIs(t, err, ErrMissingArg)

	_, _, err = Resolve([]string{"table", "--per-page", "5"})
	assert.ErrorIs(t, err, ErrMissingArg)

	_, _, err = Resolve([]string{"open", "/nowhere/at/all"})
	assert.Error(t, err)
}

func TestHelpListsCommands(t *testing.T) {
	help := generateHelp()
	for _, command := range []Command{Login, Signup, Logout, Files, Data, Table, Users, Open, Proxy} {
		assert.Contains(t, help, string(command))
	}
}

func TestRunFollowsGuardRedirects(t *testing.T) {
	var visited []router.Location
	record := func(loc router.Location) router.Location {
		visited = append(visited, loc)
		return router.Location{}
	}

	session := &fakeSession{loggedIn: true, user: shared.User{ID: 2, Role: shared.RoleUser}}
	withViews(t, session, map[router.Name]ViewFunc{
		router.Dashboard: record,
		router.Users:     record,
	})

	Run(router.To(router.Users))
	assert.Equal(t, []router.Location{router.To(router.Dashboard)}, visited)
}

func TestRunPrefersPendingRedirect(t *testing.T) {
	var visited []router.Name
	session := &fakeSession{loggedIn: true, user: shared.User{ID: 1, Role: shared.RoleAdmin}}
	withViews(t, session, map[router.Name]ViewFunc{
		router.Files: func(loc router.Location) router.Location {
			visited = append(visited, loc.Name)
			session.loggedIn = false
			globals.Router.Redirect(router.To(router.Home), router.SessionExpiredNotice)
			return router.To(router.Dashboard)
		},
		router.Home: func(loc router.Location) router.Location {
			visited = append(visited, loc.Name)
			return router.Location{}
		},
	})

	Run(router.To(router.Files))
	assert.Equal(t, []router.Name{router.Files, router.Home}, visited)

	_, pending := globals.Router.TakeRedirect()
	assert.False(t, pending)
}

func TestRunSendsLoggedOutUsersToLogin(t *testing.T) {
	calls := 0
	session := &fakeSession{loggedIn: false}
	withViews(t, session, map[router.Name]ViewFunc{
		router.Login: func(router.Location) router.Location {
			calls++
			if calls == 3 {
				return router.Location{}
			}
			return router.To(router.Files)
		},
	})

	Run(router.To(router.Files))
	assert.Equal(t, 3, calls)
}
