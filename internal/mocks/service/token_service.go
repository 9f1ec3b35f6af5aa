// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"testing"

	"chirp/internal/domain/entity"
	"chirp/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock wired to the test's lifecycle.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(user *entity.User, kind entity.TokenKind) (string, error) {
	args := m.Called(user, kind)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) Rotate(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ExtractFromHeader(header, scheme string) (string, error) {
	args := m.Called(header, scheme)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) DecodeBasic(credential string) (string, string, error) {
	args := m.Called(credential)

	return args.String(0), args.String(1), args.Error(2)
}
