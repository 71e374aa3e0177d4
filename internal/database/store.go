package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// FetchLimit bounds every collection read.
const FetchLimit = 1000

// ErrNotFound is returned when no stored record matches the domain id.
var ErrNotFound = errors.New("record not found")

// GormStore persists items and recipes per owner. Callers only ever see the
// domain id; the native RecordID never leaves this package.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// findByDomainID loads one owner's record by domain id. A numeric id falls
// back to the native key of a legacy row only when no record carries that
// domain id, so a lookup never resolves to two rows.
func findByDomainID(tx *gorm.DB, owner, idColumn, id string, record interface{}) error {
	err := tx.Where("owner_id = ? AND "+idColumn+" = ?", owner, id).First(record).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	n, parseErr := strconv.ParseUint(id, 10, 64)
	if parseErr != nil {
		return err
	}
	return tx.Where(
		fmt.Sprintf("owner_id = ? AND (%[1]s = '' OR %[1]s IS NULL) AND record_id = ?", idColumn),
		owner, n,
	).First(record).Error
}

func (s *GormStore) FetchItems(ctx context.Context, owner string) ([]models.InventoryItem, error) {
	var records []itemRecord
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("record_id asc").
		Limit(FetchLimit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, r.toDomain())
	}
	return items, nil
}

// AddItem stores a new item and returns its domain id, assigning one when
// the item has none.
func (s *GormStore) AddItem(ctx context.Context, owner string, item models.InventoryItem) (string, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = s.now()
	}

	var record itemRecord
	record.fill(owner, item)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to add item: %w", err)
	}
	return item.ID, nil
}

func (s *GormStore) UpdateItem(ctx context.Context, owner string, item models.InventoryItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record itemRecord
		if err := findByDomainID(tx, owner, "item_id", item.ID, &record); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load item %s: %w", item.ID, err)
		}

		addedAt := record.AddedAt
		record.fill(owner, item)
		record.AddedAt = addedAt
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("failed to update item %s: %w", item.ID, err)
		}
		return nil
	})
}

func (s *GormStore) DeleteItem(ctx context.Context, owner, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record itemRecord
		if err := findByDomainID(tx, owner, "item_id", id, &record); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load item %s: %w", id, err)
		}
		if err := tx.Delete(&record).Error; err != nil {
			return fmt.Errorf("failed to delete item %s: %w", id, err)
		}
		return nil
	})
}

func (s *GormStore) FetchRecipes(ctx context.Context, owner string) ([]models.Recipe, error) {
	var records []recipeRecord
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("record_id asc").
		Limit(FetchLimit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(records))
	for _, r := range records {
		recipes = append(recipes, r.toDomain())
	}
	return recipes, nil
}

func (s *GormStore) AddRecipe(ctx context.Context, owner string, recipe models.Recipe) (string, error) {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if recipe.AddedAt.IsZero() {
		recipe.AddedAt = s.now()
	}

	var record recipeRecord
	record.fill(owner, recipe)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to add recipe: %w", err)
	}
	return recipe.ID, nil
}

func (s *GormStore) UpdateRecipe(ctx context.Context, owner string, recipe models.Recipe) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record recipeRecord
		if err := findByDomainID(tx, owner, "recipe_id", recipe.ID, &record); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load recipe %s: %w", recipe.ID, err)
		}

		addedAt := record.AddedAt
		record.fill(owner, recipe)
		record.AddedAt = addedAt
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("failed to update recipe %s: %w", recipe.ID, err)
		}
		return nil
	})
}

func (s *GormStore) DeleteRecipe(ctx context.Context, owner, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record recipeRecord
		if err := findByDomainID(tx, owner, "recipe_id", id, &record); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load recipe %s: %w", id, err)
		}
		if err := tx.Delete(&record).Error; err != nil {
			return fmt.Errorf("failed to delete recipe %s: %w", id, err)
		}
		return nil
	})
}
