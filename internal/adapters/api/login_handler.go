package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lighthouse.app/internal/core/auth"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// UsernameRequest is the body of POST /login/username. An empty username is
// left to the login flow so it shows up as a screen error.
type UsernameRequest struct {
	Username string `json:"username" form:"username"`
}

// DigitRequest is the body of POST /login/digits
type DigitRequest struct {
	Digit string `json:"digit" form:"digit" binding:"required,digit"`
}

// LoginScreenResponse represents the login screen
type LoginScreenResponse struct {
	Screen string         `json:"screen"`
	State  auth.FlowState `json:"state"`
}

func (s *HTTPServerAdapter) renderLogin(c *gin.Context, state auth.FlowState) {
	c.JSON(http.StatusOK, LoginScreenResponse{Screen: "login", State: state})
}

// getLogin handles GET /login
func (s *HTTPServerAdapter) getLogin(c *gin.Context) {
	s.renderLogin(c, s.login.State())
}

// submitUsername handles POST /login/username
func (s *HTTPServerAdapter) submitUsername(c *gin.Context) {
	var req UsernameRequest
	if err := c.ShouldBind(&req); err != nil {
		s.logger.Debug("Request binding error", ports.F("error", err.Error()))
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	state, err := s.login.SubmitUsername(c.Request.Context(), req.Username)
	if err != nil {
		s.logger.Debug("Username not accepted",
			ports.F("username", req.Username),
			ports.F("error", err.Error()),
			ports.F(requestIDKey, c.GetString(requestIDKey)))
	}
	s.renderLogin(c, state)
}

// pressDigit handles POST /login/digits. The digit completing the PIN submits
// the login; success answers 303 to the next screen.
func (s *HTTPServerAdapter) pressDigit(c *gin.Context) {
	var req DigitRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, errors.NewValidationError("digit must be a single character 0-9"))
		return
	}

	state, outcome, err := s.login.PressDigit(c.Request.Context(), req.Digit)
	if err != nil && errors.IsValidationError(err) {
		s.handleError(c, err)
		return
	}
	if outcome != nil {
		s.logger.Info("Login completed",
			ports.F("username", outcome.Username),
			ports.F(requestIDKey, c.GetString(requestIDKey)))
		c.Redirect(http.StatusSeeOther, outcome.NavigateTo.Path())
		return
	}
	s.renderLogin(c, state)
}

// deleteDigit handles DELETE /login/digits
func (s *HTTPServerAdapter) deleteDigit(c *gin.Context) {
	s.renderLogin(c, s.login.DeleteDigit())
}

// clearPIN handles DELETE /login/pin
func (s *HTTPServerAdapter) clearPIN(c *gin.Context) {
	s.renderLogin(c, s.login.ClearPIN())
}

// back handles POST /login/back
func (s *HTTPServerAdapter) back(c *gin.Context) {
	s.renderLogin(c, s.login.Back())
}
