// Package navigation names the client screens and decides which of them a
// session may see.
package navigation

// Route is a named screen
type Route string

const (
	RouteAuth     Route = "auth"
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
	RouteHome     Route = "home"
	RouteExplore  Route = "explore"
	RouteProfile  Route = "profile"
)

var paths = map[Route]string{
	RouteAuth:     "/auth",
	RouteLogin:    "/login",
	RouteRegister: "/register",
	RouteHome:     "/home",
	RouteExplore:  "/explore",
	RouteProfile:  "/profile",
}

// Path returns the URL path of the route
func (r Route) Path() string {
	return paths[r]
}

// IsValid reports whether the route is one of the known screens
func (r Route) IsValid() bool {
	_, ok := paths[r]
	return ok
}

// IsProtected reports whether the route requires an authenticated session
func (r Route) IsProtected() bool {
	switch r {
	case RouteHome, RouteExplore, RouteProfile:
		return true
	default:
		return false
	}
}

// Routes lists every route in declaration order
func Routes() []Route {
	return []Route{RouteAuth, RouteLogin, RouteRegister, RouteHome, RouteExplore, RouteProfile}
}
