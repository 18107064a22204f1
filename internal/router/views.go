package router

import (
	"fmt"
	"sync"

	"github.com/labstack/echo/v4"
)

// View renders one navigable page. props is nil unless the route
// forwards its path parameters.
type View func(c echo.Context, props Props) error

// Views maps view names to their implementation
type Views struct {
	mu    sync.RWMutex
	views map[string]View
}

// NewViews creates an empty registry
func NewViews() *Views {
	return &Views{views: make(map[string]View)}
}

// Register adds a view under name
func (v *Views) Register(name string, view View) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.views[name] = view
}

// Get retrieves a view by name
func (v *Views) Get(name string) (View, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	view, ok := v.views[name]
	return view, ok
}

// Register binds every route of the table on e as a GET handler.
// It fails if a route names a view that is not registered.
func Register(e *echo.Echo, views *Views) error {
	for _, r := range Routes() {
		view, ok := views.Get(r.View)
		if !ok {
			return fmt.Errorf("route %q: view %q not registered", r.Name, r.View)
		}
		e.GET(r.Path, bind(r, view)).Name = r.Name
	}
	return nil
}

func bind(r Route, view View) echo.HandlerFunc {
	return func(c echo.Context) error {
		var props Props
		if r.Props {
			props = Props{}
			for _, name := range c.ParamNames() {
				props[name] = c.Param(name)
			}
		}
		return view(c, props)
	}
}
