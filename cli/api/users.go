package api

import (
	"strconv"

	"datashare/shared"
	"datashare/shared/endpoints"
)

func (ctx *Context) GetUsers() ([]shared.User, error) {
	var usersResponse shared.UsersResponse
	err := ctx.get(endpoints.Users.Format(ctx.Server), &usersResponse)
	if err != nil {
		return nil, err
	}

	return usersResponse.Users, nil
}

func (ctx *Context) CreateUser(newUser shared.NewUser) (shared.User, error) {
	var userResponse shared.UserResponse
	err := ctx.post(endpoints.Users.Format(ctx.Server), newUser, &userResponse)
	if err != nil {
		return shared.User{}, err
	}

	return userResponse.User, nil
}

// GetUser fetches a single user by ID.
func (ctx *Context) GetUser(id int) (shared.User, error) {
	var userResponse shared.UserResponse
	err := ctx.get(endpoints.User.Format(ctx.Server, strconv.Itoa(id)), &userResponse)
	if err != nil {
		return shared.User{}, err
	}

	return userResponse.User, nil
}

// UpdateUser sends only the fields set in update and returns the fields the
// server echoed back.
func (ctx *Context) UpdateUser(id int, update shared.UserUpdate) (shared.UserPatch, error) {
	var userResponse shared.UserPatchResponse
	endpoint := endpoints.User.Format(ctx.Server, strconv.Itoa(id))
	err := ctx.put(endpoint, update, &userResponse)
	if err != nil {
		return shared.UserPatch{}, err
	}

	return userResponse.User, nil
}

func (ctx *Context) DeleteUser(id int) error {
	return ctx.delete(endpoints.User.Format(ctx.Server, strconv.Itoa(id)), nil)
}
