package navigation

import "lighthouse.app/internal/core/session"

// Decision is the outcome of guarding one render of a route
type Decision struct {
	Allow      bool
	RedirectTo Route
}

// Guard lets public routes through and sends unauthenticated sessions on a
// protected route to the auth screen. It is evaluated on every render so a
// cleared session takes effect immediately.
func Guard(route Route, current session.Session) Decision {
	if !route.IsProtected() || current.IsAuthenticated {
		return Decision{Allow: true}
	}
	return Decision{Allow: false, RedirectTo: RouteAuth}
}
