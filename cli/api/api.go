package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"datashare/cli/requests"
	"datashare/cli/utils"
)

// Context holds everything needed to talk to a DataShare server: the server
// address, the bearer token of the current session (if any), and a hook that
// is invoked whenever the server rejects that token.
type Context struct {
	Server string

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

func InitContext(server, token string) *Context {
	return &Context{
		Server: server,
		token:  token,
	}
}

func (ctx *Context) SetToken(token string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.token = token
}

func (ctx *Context) Token() string {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.token
}

// OnUnauthorized sets the function called for every 401 response, before the
// error is returned to the caller. The hook must not call back into the
// Context while holding locks of its own.
func (ctx *Context) OnUnauthorized(hook func()) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.onUnauthorized = hook
}

func (ctx *Context) unauthorized() {
	ctx.mu.RLock()
	hook := ctx.onUnauthorized
	ctx.mu.RUnlock()

	if hook != nil {
		hook()
	}
}

// checkResponse converts a non-2xx response into an *utils.HTTPError, firing
// the unauthorized hook on a 401.
func (ctx *Context) checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	err := utils.ParseHTTPError(resp)
	if resp.StatusCode == http.StatusUnauthorized {
		ctx.unauthorized()
	}

	return err
}

// decode checks the response status and decodes a JSON body into out. The
// response body is always closed.
func (ctx *Context) decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if err := ctx.checkResponse(resp); err != nil {
		return err
	} else if out == nil {
		return nil
	}

	err := json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		log.Println("Error decoding server response: ", err)
		return err
	}

	return nil
}

func (ctx *Context) get(url string, out any) error {
	resp, err := requests.GetRequest(ctx.Token(), url)
	if err != nil {
		return err
	}

	return ctx.decode(resp, out)
}

func (ctx *Context) post(url string, in, out any) error {
	reqData, err := json.Marshal(in)
	if err != nil {
		return err
	}

	resp, err := requests.PostRequest(ctx.Token(), url, reqData)
	if err != nil {
		return err
	}

	return ctx.decode(resp, out)
}

func (ctx *Context) put(url string, in, out any) error {
	reqData, err := json.Marshal(in)
	if err != nil {
		return err
	}

	resp, err := requests.PutRequest(ctx.Token(), url, reqData)
	if err != nil {
		return err
	}

	return ctx.decode(resp, out)
}

func (ctx *Context) delete(url string, out any) error {
	resp, err := requests.DeleteRequest(ctx.Token(), url)
	if err != nil {
		return err
	}

	return ctx.decode(resp, out)
}
