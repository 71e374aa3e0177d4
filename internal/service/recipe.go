package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/zenkitchen/backend/internal/database"
	"github.com/pageza/zenkitchen/backend/internal/inventory"
	"github.com/pageza/zenkitchen/backend/internal/models"
)

// RecipeService owns each session's recipe collection with the same
// write-then-reflect ordering as InventoryService.
type RecipeService struct {
	store    RecipeStore
	sessions *sessions[models.Recipe]
	now      func() time.Time
}

func NewRecipeService(store RecipeStore) *RecipeService {
	return &RecipeService{
		store:    store,
		sessions: newSessions[models.Recipe](),
		now:      time.Now,
	}
}

func (s *RecipeService) withCollection(ctx context.Context, owner string, fn func(c *collection[models.Recipe]) error) error {
	c := s.sessions.get(owner)
	c.mu.Lock()
	defer c.mu.Unlock()

	fetch := func(ctx context.Context) ([]models.Recipe, error) {
		return s.store.FetchRecipes(ctx, owner)
	}
	if err := c.load(ctx, fetch); err != nil {
		log.Printf("[RecipeService] Failed to load recipes for %s: %v", owner, err)
		return collaboratorError("load recipes", err)
	}
	return fn(c)
}

// List returns the recipes carrying tag, or all of them when tag is empty.
func (s *RecipeService) List(ctx context.Context, owner, tag string) ([]models.Recipe, error) {
	var out []models.Recipe
	err := s.withCollection(ctx, owner, func(c *collection[models.Recipe]) error {
		if strings.TrimSpace(tag) == "" {
			out = c.snapshot()
			return nil
		}
		out = make([]models.Recipe, 0, len(c.entries))
		for _, r := range c.entries {
			if r.HasTag(tag) {
				out = append(out, r)
			}
		}
		return nil
	})
	return out, err
}

func (s *RecipeService) Add(ctx context.Context, owner string, recipe models.Recipe) (models.Recipe, error) {
	var added models.Recipe
	err := s.withCollection(ctx, owner, func(c *collection[models.Recipe]) error {
		r, err := cleanRecipe(recipe)
		if err != nil {
			return err
		}
		r.ID = uuid.New().String()
		r.AddedAt = s.now()

		id, err := s.store.AddRecipe(ctx, owner, r)
		if err != nil {
			log.Printf("[RecipeService] Failed to add recipe %q: %v", r.Name, err)
			return collaboratorError("add recipe", err)
		}
		r.ID = id
		c.entries = append(c.entries, r)
		added = r
		return nil
	})
	return added, err
}

// Update replaces the editable fields of a recipe. ID and AddedAt are kept.
func (s *RecipeService) Update(ctx context.Context, owner, id string, recipe models.Recipe) (models.Recipe, error) {
	var updated models.Recipe
	err := s.withCollection(ctx, owner, func(c *collection[models.Recipe]) error {
		i := indexOfRecipe(c.entries, id)
		if i < 0 {
			return ErrRecipeNotFound
		}
		r, err := cleanRecipe(recipe)
		if err != nil {
			return err
		}
		r.ID = c.entries[i].ID
		r.AddedAt = c.entries[i].AddedAt

		if err := s.store.UpdateRecipe(ctx, owner, r); err != nil {
			log.Printf("[RecipeService] Failed to update recipe %s: %v", id, err)
			if errors.Is(err, database.ErrNotFound) {
				return ErrRecipeNotFound
			}
			return collaboratorError("update recipe", err)
		}
		c.entries[i] = r
		updated = r
		return nil
	})
	return updated, err
}

func (s *RecipeService) Delete(ctx context.Context, owner, id string) error {
	return s.withCollection(ctx, owner, func(c *collection[models.Recipe]) error {
		i := indexOfRecipe(c.entries, id)
		if i < 0 {
			return ErrRecipeNotFound
		}
		if err := s.store.DeleteRecipe(ctx, owner, id); err != nil && !errors.Is(err, database.ErrNotFound) {
			log.Printf("[RecipeService] Failed to delete recipe %s: %v", id, err)
			return collaboratorError("delete recipe", err)
		}
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
		return nil
	})
}

// cleanRecipe trims the name and tags and drops empty or repeated tags.
func cleanRecipe(r models.Recipe) (models.Recipe, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return models.Recipe{}, &inventory.ValidationError{Field: "name", Message: "must not be empty"}
	}
	tags := make([]string, 0, len(r.Tags))
	seen := make(map[string]bool)
	for _, t := range r.Tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
	}
	r.Tags = tags
	return r, nil
}

func indexOfRecipe(recipes []models.Recipe, id string) int {
	for i := range recipes {
		if recipes[i].ID == id {
			return i
		}
	}
	return -1
}
