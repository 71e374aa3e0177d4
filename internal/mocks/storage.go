package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// MockUploader is a mock implementation of service.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

// MockSettings is a mock implementation of service.SettingsRepository
type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) Load() (models.UserProfile, error) {
	args := m.Called()
	return args.Get(0).(models.UserProfile), args.Error(1)
}

func (m *MockSettings) Save(profile models.UserProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}
