package router

import (
	"sort"
	"strings"
)

type Name string

const (
	Home      Name = "home"
	Login     Name = "login"
	Register  Name = "register"
	Dashboard Name = "dashboard"
	Files     Name = "files"
	Users     Name = "users"
	Data      Name = "data"
	Table     Name = "table"
)

const TableNameParam = "table_name"

type Route struct {
	Name          Name
	Path          string
	RequiresAuth  bool
	RequiresAdmin bool
}

var Routes = []Route{
	{Name: Home, Path: "/"},
	{Name: Login, Path: "/login"},
	{Name: Register, Path: "/register"},
	{Name: Dashboard, Path: "/dashboard", RequiresAuth: true},
	{Name: Files, Path: "/files", RequiresAuth: true},
	{Name: Users, Path: "/users", RequiresAuth: true, RequiresAdmin: true},
	{Name: Data, Path: "/data", RequiresAuth: true},
	{Name: Table, Path: "/data/:" + TableNameParam, RequiresAuth: true},
}

// Location is a resolved navigation target: a route plus its path params.
type Location struct {
	Name   Name
	Params map[string]string
}

func To(name Name) Location {
	return Location{Name: name}
}

func ToTable(tableName string) Location {
	return Location{Name: Table, Params: map[string]string{TableNameParam: tableName}}
}

func (l Location) Param(key string) string {
	return l.Params[key]
}

func (l Location) Route() (Route, bool) {
	return Lookup(l.Name)
}

// Path rebuilds the location's path from its route pattern.
func (l Location) Path() string {
	route, ok := Lookup(l.Name)
	if !ok {
		return ""
	}

	segments := strings.Split(route.Path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = l.Params[segment[1:]]
		}
	}

	return strings.Join(segments, "/")
}

func (l Location) String() string {
	if len(l.Params) == 0 {
		return string(l.Name)
	}

	keys := make([]string, 0, len(l.Params))
	for key := range l.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	params := make([]string, len(keys))
	for i, key := range keys {
		params[i] = key + "=" + l.Params[key]
	}

	return string(l.Name) + "(" + strings.Join(params, ", ") + ")"
}

func Lookup(name Name) (Route, bool) {
	for _, route := range Routes {
		if route.Name == name {
			return route, true
		}
	}

	return Route{}, false
}

// Match resolves a path such as "/data/orders" to a Location.
func Match(path string) (Location, bool) {
	path = "/" + strings.Trim(path, "/")
	parts := strings.Split(path, "/")

	for _, route := range Routes {
		pattern := strings.Split(route.Path, "/")
		if len(pattern) != len(parts) {
			continue
		}

		params := map[string]string{}
		matched := true
		for i, segment := range pattern {
			if strings.HasPrefix(segment, ":") && len(parts[i]) > 0 {
				params[segment[1:]] = parts[i]
			} else if segment != parts[i] {
				matched = false
				break
			}
		}

		if !matched {
			continue
		}

		if len(params) == 0 {
			params = nil
		}

		return Location{Name: route.Name, Params: params}, true
	}

	return Location{}, false
}
