package session

import (
	"log"
	"sync"

	"datashare/cli/api"
	"datashare/cli/utils"
	"datashare/shared"
)

// Storage persists the session between runs of the CLI. config.Paths is the
// implementation used outside of tests.
type Storage interface {
	SetToken(token string) error
	ReadToken() string
	SetUser(user shared.User) error
	ReadUser() (shared.User, bool)
	Reset() error
}

// Store holds the authentication state of the CLI: the access token and the
// user it belongs to. Both are mirrored to Storage and the token is kept in
// sync with the api.Context used for requests.
type Store struct {
	api     *api.Context
	storage Storage

	mu      sync.RWMutex
	token   string
	user    *shared.User
	loading bool
	err     string
}

// New restores any previously stored session and applies its token to ctx.
func New(ctx *api.Context, storage Storage) *Store {
	s := &Store{api: ctx, storage: storage}

	s.token = storage.ReadToken()
	if user, ok := storage.ReadUser(); ok {
		s.user = &user
	}

	ctx.SetToken(s.token)
	return s
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

func (s *Store) set(token string, user shared.User) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.api.SetToken(token)

	if err := s.storage.SetToken(token); err != nil {
		log.Printf("Error storing token: %v\n", err)
	}

	if err := s.storage.SetUser(user); err != nil {
		log.Printf("Error storing user: %v\n", err)
	}
}

// clear removes the session from memory, storage, and the api context,
// returning the token that was in use.
func (s *Store) clear() string {
	s.mu.Lock()
	token := s.token
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.api.SetToken("")
	if err := s.storage.Reset(); err != nil {
		log.Printf("Error clearing stored session: %v\n", err)
	}

	return token
}

// Login authenticates with the server and stores the resulting session.
func (s *Store) Login(username, password string) (shared.LoginResponse, error) {
	s.begin()
	defer s.done()

	resp, err := s.api.Login(shared.Login{Username: username, Password: password})
	if err != nil {
		s.fail(err, "Login failed")
		return shared.LoginResponse{}, err
	}

	s.set(resp.AccessToken, resp.User)
	return resp, nil
}

// Register creates a new account. The user still needs to log in afterwards.
func (s *Store) Register(username, password, email string) (shared.RegisterResponse, error) {
	s.begin()
	defer s.done()

	resp, err := s.api.Register(shared.Register{
		Username: username,
		Password: password,
		Email:    email,
	})
	if err != nil {
		s.fail(err, "Registration failed")
		return shared.RegisterResponse{}, err
	}

	return resp, nil
}

// Logout always clears the local session. The server is notified if there was
// a session to end, but a failure to do so is only logged.
func (s *Store) Logout() {
	s.begin()
	defer s.done()

	s.logout()
}

// logout clears the session and notifies the server without touching the
// loading state, so it can run inside another operation.
func (s *Store) logout() {
	token := s.clear()
	if len(token) == 0 {
		return
	}

	if err := s.api.Logout(token); err != nil {
		log.Printf("Logout request failed: %v\n", err)
	}
}

// GetCurrentUser refreshes the stored user from the server. If the server
// rejects the request, the session is logged out.
func (s *Store) GetCurrentUser() (shared.User, error) {
	s.begin()
	defer s.done()

	user, err := s.api.GetCurrentUser()
	if err != nil {
		s.logout()
		s.fail(err, "Failed to fetch user")
		return shared.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	if err = s.storage.SetUser(user); err != nil {
		log.Printf("Error storing user: %v\n", err)
	}

	return user, nil
}

// Expire clears the session after the server has rejected its token. Returns
// true only for the call that actually cleared an active session.
func (s *Store) Expire() bool {
	s.mu.RLock()
	active := len(s.token) > 0
	s.mu.RUnlock()

	if !active {
		return false
	}

	return len(s.clear()) > 0
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.token) > 0
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged in user, if there is one.
func (s *Store) User() (shared.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return shared.User{}, false
	}

	return *s.user, true
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
