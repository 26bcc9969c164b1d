package api

import (
	"datashare/cli/requests"
	"datashare/shared"
	"datashare/shared/endpoints"
)

// Login exchanges a username and password for an access token. The token is
// not stored in the context; that's left to the session.
func (ctx *Context) Login(login shared.Login) (shared.LoginResponse, error) {
	var loginResponse shared.LoginResponse
	err := ctx.post(endpoints.Login.Format(ctx.Server), login, &loginResponse)
	if err != nil {
		return shared.LoginResponse{}, err
	}

	return loginResponse, nil
}

// Register creates a new (non-admin) account.
func (ctx *Context) Register(register shared.Register) (shared.RegisterResponse, error) {
	var registerResponse shared.RegisterResponse
	err := ctx.post(endpoints.Register.Format(ctx.Server), register, &registerResponse)
	if err != nil {
		return shared.RegisterResponse{}, err
	}

	return registerResponse, nil
}

// Logout tells the server to end the session belonging to token. The token is
// passed explicitly since the session is usually cleared locally first.
func (ctx *Context) Logout(token string) error {
	resp, err := requests.PostRequest(token, endpoints.Logout.Format(ctx.Server), []byte("{}"))
	if err != nil {
		return err
	}

	return ctx.decode(resp, nil)
}

// GetCurrentUser returns the user the current token belongs to. This doubles
// as the validity check for a stored token.
func (ctx *Context) GetCurrentUser() (shared.User, error) {
	var userResponse shared.UserResponse
	err := ctx.get(endpoints.Me.Format(ctx.Server), &userResponse)
	if err != nil {
		return shared.User{}, err
	}

	return userResponse.User, nil
}
