package endpoints

import (
	"fmt"
	"net/url"
	"strings"
)

const apiPrefix = "/api"

type Endpoint string

var (
	Login    = genEndpoint("%s/auth/login")
	Register = genEndpoint("%s/auth/register")
	Logout   = genEndpoint("%s/auth/logout")
	Me       = genEndpoint("%s/auth/me")

	Files      = genEndpoint("%s/files")
	File       = genEndpoint("%s/files/*")
	ShareFile  = genEndpoint("%s/files/*/share")
	RenameFile = genEndpoint("%s/files/*/rename")
	CopyFile   = genEndpoint("%s/files/*/copy")

	Tables      = genEndpoint("%s/data/tables")
	Table       = genEndpoint("%s/data/tables/*")
	TableData   = genEndpoint("%s/data/tables/*/data")
	TableExport = genEndpoint("%s/data/tables/*/export")

	Users = genEndpoint("%s/users")
	User  = genEndpoint("%s/users/*")
)

func genEndpoint(fmtStr string) Endpoint {
	if !strings.Contains(fmtStr, "%s") {
		return Endpoint(fmtStr)
	}

	return Endpoint(fmt.Sprintf(fmtStr, apiPrefix))
}

// Format expands the endpoint against a server address, replacing each
// wildcard with the next (path-escaped) argument in order.
func (e Endpoint) Format(server string, args ...string) string {
	strEndpoint := string(e)
	for _, arg := range args {
		strEndpoint = strings.Replace(
			strEndpoint, "*", url.PathEscape(arg), 1)
	}

	// Remove remaining wildcards
	strEndpoint = strings.ReplaceAll(strEndpoint, "*", "")

	server = strings.TrimSuffix(server, "/")
	strEndpoint = strings.TrimPrefix(strEndpoint, "/")
	return fmt.Sprintf("%s/%s", server, strEndpoint)
}

// WithQuery is Format followed by an encoded query string, if any.
func (e Endpoint) WithQuery(server string, query url.Values, args ...string) string {
	formatted := e.Format(server, args...)
	if len(query) == 0 {
		return formatted
	}

	return formatted + "?" + query.Encode()
}
