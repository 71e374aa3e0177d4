package service

import (
	"context"
	"time"

	"github.com/pageza/zenkitchen/backend/internal/llm"
	"github.com/pageza/zenkitchen/backend/internal/models"
)

// ItemStore is the persistence collaborator for inventory items. All calls
// are scoped to one owner.
type ItemStore interface {
	FetchItems(ctx context.Context, owner string) ([]models.InventoryItem, error)
	AddItem(ctx context.Context, owner string, item models.InventoryItem) (string, error)
	UpdateItem(ctx context.Context, owner string, item models.InventoryItem) error
	DeleteItem(ctx context.Context, owner, id string) error
}

// RecipeStore is the persistence collaborator for recipes.
type RecipeStore interface {
	FetchRecipes(ctx context.Context, owner string) ([]models.Recipe, error)
	AddRecipe(ctx context.Context, owner string, recipe models.Recipe) (string, error)
	UpdateRecipe(ctx context.Context, owner string, recipe models.Recipe) error
	DeleteRecipe(ctx context.Context, owner, id string) error
}

// Completer runs a request through the configured model priority list and
// reports which model answered.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (text string, model string, err error)
}

// DraftCache holds recognized drafts until the user confirms or discards them.
type DraftCache interface {
	Save(ctx context.Context, batch *DraftBatch) error
	Get(ctx context.Context, id string) (*DraftBatch, error)
	Delete(ctx context.Context, id string) error
}

// Uploader stores an object and returns a URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// SettingsRepository loads and saves the user profile.
type SettingsRepository interface {
	Load() (models.UserProfile, error)
	Save(profile models.UserProfile) error
}

// TransitionRecorder counts lifecycle transitions.
type TransitionRecorder interface {
	Transition(status string)
}

// AIRecorder observes AI calls.
type AIRecorder interface {
	AIDegraded(operation string)
	ObserveAICall(operation string, d time.Duration)
}
