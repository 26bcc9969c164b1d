package users

import (
	"sync"
	"time"

	"datashare/cli/api"
	"datashare/cli/utils"
	"datashare/shared"
)

// Store holds the user list shown to admins. Unlike the file store, mutations
// patch the local list with the server's echo instead of re-fetching it.
type Store struct {
	api *api.Context

	mu      sync.RWMutex
	users   []shared.User
	loading bool
	err     string
}

func New(ctx *api.Context) *Store {
	return &Store{api: ctx}
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *Store) done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *Store) fail(err error, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = utils.ErrorMessage(err, fallback)
}

func (s *Store) Fetch() ([]shared.User, error) {
	s.begin()
	defer s.done()

	users, err := s.api.GetUsers()
	if err != nil {
		s.fail(err, "Failed to fetch users")
		return nil, err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return users, nil
}

// Create adds a new user. New users are listed as offline until the list is
// next fetched.
func (s *Store) Create(newUser shared.NewUser) (shared.User, error) {
	s.begin()
	defer s.done()

	user, err := s.api.CreateUser(newUser)
	if err != nil {
		s.fail(err, "Failed to create user")
		return shared.User{}, err
	}

	user.Status = shared.StatusOffline
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	s.users = append(s.users, user)
	s.mu.Unlock()
	return user, nil
}

// Update sends the changed fields and applies the server's echo to the
// matching local entry. Every key in the echo is taken as-is, including empty
// values such as a cleared email.
func (s *Store) Update(id int, update shared.UserUpdate) (shared.User, error) {
	s.begin()
	defer s.done()

	patch, err := s.api.UpdateUser(id, update)
	if err != nil {
		s.fail(err, "Failed to update user")
		return shared.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = patch.Apply(s.users[i])
			return s.users[i], nil
		}
	}

	return patch.Apply(shared.User{ID: id}), nil
}

// Refresh re-reads a single user from the server and replaces the local entry.
func (s *Store) Refresh(id int) (shared.User, error) {
	s.begin()
	defer s.done()

	user, err := s.api.GetUser(id)
	if err != nil {
		s.fail(err, "Failed to fetch user")
		return shared.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = user
			return user, nil
		}
	}

	s.users = append(s.users, user)
	return user, nil
}

func (s *Store) Delete(id int) error {
	s.begin()
	defer s.done()

	if err := s.api.DeleteUser(id); err != nil {
		s.fail(err, "Failed to delete user")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := s.users[:0]
	for _, user := range s.users {
		if user.ID != id {
			remaining = append(remaining, user)
		}
	}

	s.users = remaining
	return nil
}

func (s *Store) Users() []shared.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shared.User(nil), s.users...)
}

func (s *Store) TotalUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Store) OnlineUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, user := range s.users {
		if user.Status == shared.StatusOnline {
			count++
		}
	}

	return count
}

func (s *Store) AdminUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, user := range s.users {
		if user.IsAdmin() {
			count++
		}
	}

	return count
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
