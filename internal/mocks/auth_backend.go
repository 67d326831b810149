package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"lighthouse.app/internal/ports"
)

// AuthBackend is a mock of ports.AuthBackend
type AuthBackend struct {
	mock.Mock
}

// NewAuthBackend creates a mock and registers expectation checks on cleanup
func NewAuthBackend(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthBackend {
	m := &AuthBackend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthBackend) ValidateUsername(ctx context.Context, username string) (*ports.UsernameCheck, error) {
	args := m.Called(ctx, username)
	var check *ports.UsernameCheck
	if v := args.Get(0); v != nil {
		check = v.(*ports.UsernameCheck)
	}
	return check, args.Error(1)
}

func (m *AuthBackend) Login(ctx context.Context, credentials ports.LoginCredentials) (*ports.LoginResult, error) {
	args := m.Called(ctx, credentials)
	var result *ports.LoginResult
	if v := args.Get(0); v != nil {
		result = v.(*ports.LoginResult)
	}
	return result, args.Error(1)
}
