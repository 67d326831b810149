package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lighthouse.app/internal/mocks"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *AuthBackendClientAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAuthBackendClientAdapter(AuthBackendClientParams{
		BaseURL: server.URL + "/",
		Logger:  mocks.NewLogger(),
	})
	require.NoError(t, err)
	return client
}

func TestAuthBackendClient_ValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected *ports.UsernameCheck
	}{
		{
			name:     "Accepted",
			status:   http.StatusOK,
			body:     `{"success":true}`,
			expected: &ports.UsernameCheck{Success: true},
		},
		{
			name:     "RejectedWithMessage",
			status:   http.StatusOK,
			body:     `{"success":false,"message":"unknown user"}`,
			expected: &ports.UsernameCheck{Success: false, Message: "unknown user"},
		},
		{
			name:     "ErrorStatusWithMessage",
			status:   http.StatusNotFound,
			body:     `{"success":false,"message":"no such account"}`,
			expected: &ports.UsernameCheck{Success: false, Message: "no such account"},
		},
		{
			name:     "ErrorStatusClaimingSuccess",
			status:   http.StatusForbidden,
			body:     `{"success":true,"message":"account locked"}`,
			expected: &ports.UsernameCheck{Success: false, Message: "account locked"},
		},
		{
			name:     "ErrorStatusClaimingSuccessWithoutMessage",
			status:   http.StatusBadGateway,
			body:     `{"success":true}`,
			expected: &ports.UsernameCheck{Success: false, Message: "502 Bad Gateway"},
		},
		{
			name:     "ErrorStatusWithoutBody",
			status:   http.StatusInternalServerError,
			expected: &ports.UsernameCheck{Success: false, Message: "500 Internal Server Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/auth/username/ada lovelace", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			check, err := client.ValidateUsername(context.Background(), "ada lovelace")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, check)
		})
	}
}

func TestAuthBackendClient_ValidateUsername_UndecodableSuccess(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := client.ValidateUsername(context.Background(), "ada")
	require.Error(t, err)
	assert.True(t, errors.IsRejectedResponse(err))
}

func TestAuthBackendClient_Login(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds ports.LoginCredentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, ports.LoginCredentials{Username: "ada", Password: "123456"}, creds)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"userId":42,"jwt":"token-abc"}`))
	})

	result, err := client.Login(context.Background(), ports.LoginCredentials{Username: "ada", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, &ports.LoginResult{UserID: "42", JWT: "token-abc"}, result)
}

func TestAuthBackendClient_LoginFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expectedMsg string
	}{
		{name: "WrongPINWithMessage", status: http.StatusUnauthorized, body: `{"message":"wrong PIN"}`, expectedMsg: "wrong PIN"},
		{name: "WrongPINWithoutBody", status: http.StatusUnauthorized, expectedMsg: "401 Unauthorized"},
		{name: "OKIsNotCreated", status: http.StatusOK, body: `{"userId":"u1","jwt":"t"}`, expectedMsg: "200 OK"},
		{name: "MissingJWT", status: http.StatusCreated, body: `{"userId":"u1"}`, expectedMsg: "malformed login response"},
		{name: "NullUserID", status: http.StatusCreated, body: `{"userId":null,"jwt":"t"}`, expectedMsg: "malformed login response"},
		{name: "NotJSON", status: http.StatusCreated, body: `nope`, expectedMsg: "malformed login response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			result, err := client.Login(context.Background(), ports.LoginCredentials{Username: "ada", Password: "000000"})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.IsLoginRejected(err))
			assert.Equal(t, tt.expectedMsg, errors.Message(err))
		})
	}
}

func TestAuthBackendClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewAuthBackendClientAdapter(AuthBackendClientParams{BaseURL: url, Logger: mocks.NewLogger()})
	require.NoError(t, err)

	_, err = client.ValidateUsername(context.Background(), "ada")
	assert.True(t, errors.IsNetworkFailure(err))

	_, err = client.Login(context.Background(), ports.LoginCredentials{Username: "ada", Password: "123456"})
	assert.True(t, errors.IsNetworkFailure(err))
}

func TestNewAuthBackendClientAdapter_Validation(t *testing.T) {
	_, err := NewAuthBackendClientAdapter(AuthBackendClientParams{BaseURL: "http://localhost:3000"})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewAuthBackendClientAdapter(AuthBackendClientParams{BaseURL: "", Logger: mocks.NewLogger()})
	assert.True(t, errors.IsConfigurationError(err))

	client, err := NewAuthBackendClientAdapter(AuthBackendClientParams{BaseURL: "http://localhost:3000/", Logger: mocks.NewLogger()})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", client.BaseURL())
}
