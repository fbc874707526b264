package mocks

import (
	"context"
	"io"

	"answerhub/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, originalName string, r io.Reader) (storage.SavedFile, error) {
	args := m.Called(ctx, originalName, r)
	return args.Get(0).(storage.SavedFile), args.Error(1)
}

func (m *MockFileStore) Resolve(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}
