package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lighthouse.app/internal/core/navigation"
	"lighthouse.app/internal/core/session"
	"lighthouse.app/internal/ports"
)

// Action is a button of a screen
type Action struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// UserView is the part of the session a screen may show. The JWT is never rendered.
type UserView struct {
	Username        *string `json:"username"`
	IsAuthenticated bool    `json:"isAuthenticated"`
}

// ScreenResponse represents a rendered screen
type ScreenResponse struct {
	Screen  navigation.Route `json:"screen"`
	Title   string           `json:"title"`
	User    *UserView        `json:"user,omitempty"`
	Actions []Action         `json:"actions,omitempty"`
}

func userView(current session.Session) *UserView {
	return &UserView{Username: current.Username, IsAuthenticated: current.IsAuthenticated}
}

// getAuth handles GET /auth, the landing screen
func (s *HTTPServerAdapter) getAuth(c *gin.Context) {
	c.JSON(http.StatusOK, ScreenResponse{
		Screen: navigation.RouteAuth,
		Title:  "Welcome to the app",
		User:   userView(s.session.Snapshot()),
		Actions: []Action{
			{Label: "Login", Method: http.MethodGet, Path: navigation.RouteLogin.Path()},
			{Label: "Register", Method: http.MethodGet, Path: navigation.RouteRegister.Path()},
		},
	})
}

// getRegister handles GET /register
func (s *HTTPServerAdapter) getRegister(c *gin.Context) {
	c.JSON(http.StatusOK, ScreenResponse{
		Screen: navigation.RouteRegister,
		Title:  "Register",
	})
}

// getHome handles GET /home
func (s *HTTPServerAdapter) getHome(c *gin.Context) {
	c.JSON(http.StatusOK, ScreenResponse{
		Screen: navigation.RouteHome,
		Title:  "Home",
		User:   userView(s.session.Snapshot()),
		Actions: []Action{
			{Label: "Explore", Method: http.MethodGet, Path: navigation.RouteExplore.Path()},
			{Label: "Profile", Method: http.MethodGet, Path: navigation.RouteProfile.Path()},
		},
	})
}

// getProfile handles GET /profile
func (s *HTTPServerAdapter) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, ScreenResponse{
		Screen: navigation.RouteProfile,
		Title:  "Profile",
		User:   userView(s.session.Snapshot()),
		Actions: []Action{
			{Label: "Logout", Method: http.MethodPost, Path: navigation.RouteProfile.Path() + "/logout"},
		},
	})
}

// logout handles POST /profile/logout. The in-memory session is cleared even
// when persisting fails, so the user is logged out either way.
func (s *HTTPServerAdapter) logout(c *gin.Context) {
	if err := s.session.ClearUser(c.Request.Context()); err != nil {
		s.logger.Warn("Logout could not be persisted",
			ports.F("error", err.Error()),
			ports.F(requestIDKey, c.GetString(requestIDKey)))
	}
	c.Redirect(http.StatusSeeOther, navigation.RouteAuth.Path())
}
