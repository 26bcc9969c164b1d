package globals

import (
	"datashare/cli/api"
	"datashare/cli/config"
	"datashare/cli/router"
	"datashare/cli/session"
	"datashare/cli/store/data"
	"datashare/cli/store/files"
	"datashare/cli/store/users"
)

var Config config.Config
var Paths config.Paths

var API *api.Context
var Session *session.Store
var Router *router.Router

var Files *files.Store
var Data *data.Store
var Users *users.Store

// Init loads the user's config and restores their session, wiring the stores
// to a shared api.Context. Any 401 from the server clears the session and
// queues a redirect to the home view.
func Init() error {
	var err error

	Paths, err = config.SetupConfigDir()
	if err != nil {
		return err
	}

	Config, err = config.ReadConfig(Paths)
	if err != nil {
		return err
	}

	API = api.InitContext(Config.Server, "")
	Session = session.New(API, Paths)
	Router = router.New(Session)
	API.OnUnauthorized(router.UnauthorizedHandler(Router, Session))

	Files = files.New(API)
	Data = data.New(API)
	Users = users.New(API)

	return nil
}
