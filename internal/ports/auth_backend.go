package ports

import "context"

// UsernameCheck is the body of the username validation endpoint
type UsernameCheck struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LoginCredentials is sent to the login endpoint; the PIN travels as the password
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is a successful login: HTTP 201 with both fields present
type LoginResult struct {
	UserID string
	JWT    string
}

// AuthBackend defines the contract for the account service.
// ValidateUsername reports rejection through UsernameCheck.Success and only
// returns an error when no verdict could be obtained. Login returns a
// LoginRejected error for any non-201 or malformed reply and NetworkFailure
// when the request never completed.
type AuthBackend interface {
	ValidateUsername(ctx context.Context, username string) (*UsernameCheck, error)
	Login(ctx context.Context, credentials LoginCredentials) (*LoginResult, error)
}
