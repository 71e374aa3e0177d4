package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// MockStore is a mock implementation of the item and recipe stores
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FetchItems(ctx context.Context, owner string) ([]models.InventoryItem, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItem), args.Error(1)
}

func (m *MockStore) AddItem(ctx context.Context, owner string, item models.InventoryItem) (string, error) {
	args := m.Called(ctx, owner, item)
	return args.String(0), args.Error(1)
}

func (m *MockStore) UpdateItem(ctx context.Context, owner string, item models.InventoryItem) error {
	args := m.Called(ctx, owner, item)
	return args.Error(0)
}

func (m *MockStore) DeleteItem(ctx context.Context, owner, id string) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockStore) FetchRecipes(ctx context.Context, owner string) ([]models.Recipe, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockStore) AddRecipe(ctx context.Context, owner string, recipe models.Recipe) (string, error) {
	args := m.Called(ctx, owner, recipe)
	return args.String(0), args.Error(1)
}

func (m *MockStore) UpdateRecipe(ctx context.Context, owner string, recipe models.Recipe) error {
	args := m.Called(ctx, owner, recipe)
	return args.Error(0)
}

func (m *MockStore) DeleteRecipe(ctx context.Context, owner, id string) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}
