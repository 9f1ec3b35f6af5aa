package service

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockImageStore is a mock implementation of service.ImageStore.
type MockImageStore struct {
	mock.Mock
}

// NewMockImageStore creates a mock wired to the test's lifecycle.
func NewMockImageStore(t *testing.T) *MockImageStore {
	m := &MockImageStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageStore) EnsureStaged(name string) error {
	args := m.Called(name)

	return args.Error(0)
}

func (m *MockImageStore) CommitPostImage(name string) error {
	args := m.Called(name)

	return args.Error(0)
}
