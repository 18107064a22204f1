package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// Route names
const (
	RouteTasks      = "tasks"
	RouteCreateTask = "create-task"
	RouteEditTask   = "edit-task"
)

// View names
const (
	ViewTaskList = "task-list"
	ViewTaskForm = "task-form"
)

// Route binds a navigable path to a view
type Route struct {
	Path string
	Name string
	View string
	// Props forwards the path parameters to the view
	Props bool
}

// Props are the path parameters handed to a view
type Props map[string]string

// Match is the result of resolving a path
type Match struct {
	Route  Route
	Params Props
}

var routes = []Route{
	{Path: "/", Name: RouteTasks, View: ViewTaskList},
	{Path: "/create", Name: RouteCreateTask, View: ViewTaskForm},
	{Path: "/edit/:id", Name: RouteEditTask, View: ViewTaskForm, Props: true},
}

var (
	byPath  = make(map[string]Route, len(routes))
	matcher = newMatcher()
)

// newMatcher loads the table into an echo router that is only ever
// searched, never served
func newMatcher() *echo.Echo {
	e := echo.New()
	for _, r := range routes {
		byPath[r.Path] = r
		e.GET(r.Path, func(echo.Context) error { return nil }).Name = r.Name
	}
	return e
}

// Routes returns the route table in declaration order
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds a route by name
func Lookup(name string) (Route, bool) {
	for _, r := range routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// MustLookup is Lookup for route names known at compile time
func MustLookup(name string) Route {
	r, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("unknown route %q", name))
	}
	return r
}

// Resolve maps path to the single matching route using the same echo
// router the server serves pages with. The path is read the way a request
// line is: query and fragment are dropped, one trailing slash is removed and
// parameters keep their raw escaped form. ok is false when nothing matches.
func Resolve(path string) (match Match, ok bool) {
	u, err := url.Parse(path)
	if err != nil {
		return Match{}, false
	}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
		if u.RawPath != "" {
			u.RawPath = "/" + u.RawPath
		}
	}
	// same as middleware.RemoveTrailingSlash, which only touches Path
	if l := len(u.Path) - 1; l > 0 && strings.HasSuffix(u.Path, "/") {
		u.Path = u.Path[:l]
	}

	c := matcher.NewContext(nil, nil)
	matcher.Router().Find(http.MethodGet, echo.GetPath(&http.Request{URL: u}), c)

	r, ok := byPath[c.Path()]
	if !ok {
		return Match{}, false
	}
	m := Match{Route: r}
	if r.Props {
		m.Params = Props{}
		for _, name := range c.ParamNames() {
			m.Params[name] = c.Param(name)
		}
	}
	return m, true
}

// URLFor builds the path of a named route
func URLFor(name string, params Props) (string, error) {
	r, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown route %q", name)
	}

	parts := strings.Split(strings.Trim(r.Path, "/"), "/")
	for i, part := range parts {
		if !strings.HasPrefix(part, ":") {
			continue
		}
		value := params[part[1:]]
		if value == "" {
			return "", fmt.Errorf("route %q requires parameter %q", name, part[1:])
		}
		parts[i] = url.PathEscape(value)
	}
	return "/" + strings.Join(parts, "/"), nil
}

// MustURLFor is URLFor for route names known at compile time
func MustURLFor(name string, params Props) string {
	path, err := URLFor(name, params)
	if err != nil {
		panic(err)
	}
	return path
}
