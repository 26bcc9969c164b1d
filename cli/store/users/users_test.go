package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datashare/cli/api"
	"datashare/shared"
)

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func backend(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/users":
			reply(w, http.StatusOK, shared.UsersResponse{Users: []shared.User{
				{ID: 1, Username: "root", Email: "root@example.com", Role: shared.RoleAdmin, Status: shared.StatusOnline},
				{ID: 2, Username: "alice", Email: "alice@example.com", Role: shared.RoleUser, Status: shared.StatusOffline},
			}})
		case "POST /api/users":
			var newUser shared.NewUser
			require.NoError(t, json.NewDecoder(r.Body).Decode(&newUser))
			if newUser.Username == "root" {
				reply(w, http.StatusBadRequest, shared.ErrorResponse{Error: "username already exists"})
				return
			}
			reply(w, http.StatusCreated, shared.UserResponse{User: shared.User{
				ID: 3, Username: newUser.Username, Role: newUser.Role,
			}})
		case "PUT /api/users/2":
			var update shared.UserUpdate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&update))

			user := map[string]any{"id": 2}
			if update.Role != nil {
				user["role"] = *update.Role
			}
			if update.Email != nil {
				user["email"] = *update.Email
			}
			reply(w, http.StatusOK, map[string]any{"message": "updated", "user": user})
		case "GET /api/users/2":
			reply(w, http.StatusOK, shared.UserResponse{User: shared.User{
				ID: 2, Username: "alice", Email: "alice@new.example.com",
				Role: shared.RoleUser, Status: shared.StatusOnline, CreatedAt: "2024-01-02T00:00:00",
			}})
		case "GET /api/users/9":
			reply(w, http.StatusNotFound, shared.ErrorResponse{Error: "user not found"})
		case "DELETE /api/users/2":
			reply(w, http.StatusOK, shared.MessageResponse{Message: "deleted"})
		case "DELETE /api/users/1":
			reply(w, http.StatusBadRequest, shared.ErrorResponse{Error: "cannot delete yourself"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}

func setup(t *testing.T) *Store {
	server := httptest.NewServer(backend(t))
	t.Cleanup(server.Close)

	store := New(api.InitContext(server.URL, "t1"))
	_, err := store.Fetch()
	require.NoError(t, err)
	return store
}

func TestFetch(t *testing.T) {
	store := setup(t)
	assert.Equal(t, 2, store.TotalUsers())
	assert.Equal(t, 1, store.OnlineUsers())
	assert.Equal(t, 1, store.AdminUsers())
	assert.False(t, store.Loading())
}

func TestCreate(t *testing.T) {
	store := setup(t)

	user, err := store.Create(shared.NewUser{Username: "bob", Password: "pw", Role: shared.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, shared.StatusOffline, user.Status)
	assert.NotEmpty(t, user.CreatedAt)

	users := store.Users()
	require.Len(t, users, 3)
	assert.Equal(t, "bob", users[2].Username)
	assert.Equal(t, shared.StatusOffline, users[2].Status)
}

func TestCreateError(t *testing.T) {
	store := setup(t)

	_, err := store.Create(shared.NewUser{Username: "root", Password: "pw"})
	assert.Error(t, err)
	assert.Equal(t, "username already exists", store.Err())
	assert.Equal(t, 2, store.TotalUsers())
}

func TestUpdateMerges(t *testing.T) {
	store := setup(t)

	role := shared.RoleAdmin
	user, err := store.Update(2, shared.UserUpdate{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, shared.RoleAdmin, user.Role)
	assert.Equal(t, 2, store.AdminUsers())
}

func TestUpdateClearsEmail(t *testing.T) {
	store := setup(t)

	cleared := ""
	user, err := store.Update(2, shared.UserUpdate{Email: &cleared})
	require.NoError(t, err)
	assert.Empty(t, user.Email)
	assert.Equal(t, "alice", user.Username)

	for _, u := range store.Users() {
		if u.ID == 2 {
			assert.Empty(t, u.Email)
			assert.Equal(t, shared.RoleUser, u.Role)
		}
	}
}

func TestRefresh(t *testing.T) {
	store := setup(t)

	user, err := store.Refresh(2)
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", user.Email)
	assert.Equal(t, 2, store.TotalUsers())
	assert.Equal(t, 2, store.OnlineUsers())
	assert.False(t, store.Loading())

	_, err = store.Refresh(9)
	assert.Error(t, err)
	assert.Equal(t, "user not found", store.Err())
	assert.Equal(t, 2, store.TotalUsers())
}

func TestDelete(t *testing.T) {
	store := setup(t)

	require.NoError(t, store.Delete(2))
	users := store.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "root", users[0].Username)

	assert.Error(t, store.Delete(1))
	assert.Equal(t, "cannot delete yourself", store.Err())
	assert.Equal(t, 1, store.TotalUsers())
}
