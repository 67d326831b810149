package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// AuthBackendClientAdapter implements AuthBackend port over the account HTTP API
type AuthBackendClientAdapter struct {
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// AuthBackendClientParams holds parameters for creating the backend client
type AuthBackendClientParams struct {
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// loginResponse is the 201 body of the login endpoint. userId may be a
// number or a string depending on the backend.
type loginResponse struct {
	UserID json.RawMessage `json:"userId"`
	JWT    string          `json:"jwt"`
}

// NewAuthBackendClientAdapter creates a new backend client adapter
func NewAuthBackendClientAdapter(params AuthBackendClientParams) (*AuthBackendClientAdapter, error) {
	if params.Logger == nil {
		return nil, errors.NewConfigurationError("backend logger cannot be nil", nil)
	}
	if _, err := url.ParseRequestURI(params.BaseURL); err != nil {
		return nil, errors.NewConfigurationError("invalid backend base URL", err)
	}

	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &AuthBackendClientAdapter{
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		client:  client,
		logger:  params.Logger,
	}, nil
}

// BaseURL returns the API root requests are sent to
func (c *AuthBackendClientAdapter) BaseURL() string {
	return c.baseURL
}

// ValidateUsername calls GET /auth/username/{username}. Any decodable verdict
// is returned as is, whatever the status; a failure status without a verdict
// becomes {success:false} carrying the status text.
func (c *AuthBackendClientAdapter) ValidateUsername(ctx context.Context, username string) (*ports.UsernameCheck, error) {
	endpoint := fmt.Sprintf("%s/auth/username/%s", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewValidationError("invalid username request: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, "backend", err)
	}
	defer closeBody(resp, c.logger, "backend")

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, transportError(ctx, "backend", err)
	}

	var check ports.UsernameCheck
	decodeErr := json.Unmarshal(data, &check)
	success := resp.StatusCode >= 200 && resp.StatusCode <= 299

	// only a 2xx can accept a username, whatever the body claims
	switch {
	case success && decodeErr == nil:
		return &check, nil
	case success:
		return nil, errors.NewRejectedResponseError("invalid username validation response", decodeErr)
	case decodeErr == nil && check.Message != "":
		return &ports.UsernameCheck{Success: false, Message: check.Message}, nil
	default:
		return &ports.UsernameCheck{Success: false, Message: statusText(resp)}, nil
	}
}

// Login calls POST /auth/login. Only a 201 carrying both userId and jwt
// counts as success.
func (c *AuthBackendClientAdapter) Login(ctx context.Context, credentials ports.LoginCredentials) (*ports.LoginResult, error) {
	payload, err := json.Marshal(credentials)
	if err != nil {
		return nil, errors.NewValidationError("invalid login credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewValidationError("invalid login request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, "backend", err)
	}
	defer closeBody(resp, c.logger, "backend")

	if resp.StatusCode != http.StatusCreated {
		msg := readErrorMessage(resp)
		if msg == "" {
			msg = statusText(resp)
		}
		return nil, errors.NewLoginRejectedError(msg, nil)
	}

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewLoginRejectedError("malformed login response", err)
	}

	userID := rawID(body.UserID)
	if userID == "" || body.JWT == "" {
		return nil, errors.NewLoginRejectedError("malformed login response", nil)
	}

	return &ports.LoginResult{UserID: userID, JWT: body.JWT}, nil
}

// rawID renders a JSON string or number id as text; null and empty are ""
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
