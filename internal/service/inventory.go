package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/zenkitchen/backend/internal/database"
	"github.com/pageza/zenkitchen/backend/internal/inventory"
	"github.com/pageza/zenkitchen/backend/internal/models"
)

// ItemView is an item together with its derived expiry state.
type ItemView struct {
	models.InventoryItem
	Expiry         inventory.Classification `json:"expiry"`
	RelativeExpiry string                   `json:"relative_expiry,omitempty"`
}

// InventoryView is one filtered read of a session's collection.
type InventoryView struct {
	Items   []ItemView        `json:"items"`
	Facets  []inventory.Facet `json:"facets"`
	Summary inventory.Summary `json:"summary"`
}

// InventoryService owns each session's item collection. Every mutation is
// written to the store first and reflected locally only after it succeeds.
type InventoryService struct {
	store    ItemStore
	recorder TransitionRecorder
	sessions *sessions[models.InventoryItem]
	now      func() time.Time
}

func NewInventoryService(store ItemStore, recorder TransitionRecorder) *InventoryService {
	return &InventoryService{
		store:    store,
		recorder: recorder,
		sessions: newSessions[models.InventoryItem](),
		now:      time.Now,
	}
}

// withCollection runs fn with the owner's loaded collection locked.
func (s *InventoryService) withCollection(ctx context.Context, owner string, fn func(c *collection[models.InventoryItem]) error) error {
	c := s.sessions.get(owner)
	c.mu.Lock()
	defer c.mu.Unlock()

	fetch := func(ctx context.Context) ([]models.InventoryItem, error) {
		return s.store.FetchItems(ctx, owner)
	}
	if err := c.load(ctx, fetch); err != nil {
		log.Printf("[InventoryService] Failed to load items for %s: %v", owner, err)
		return collaboratorError("load items", err)
	}
	return fn(c)
}

// List derives the filtered view, facets and summary from the collection.
func (s *InventoryService) List(ctx context.Context, owner string, q inventory.Query) (*InventoryView, error) {
	var view *InventoryView
	err := s.withCollection(ctx, owner, func(c *collection[models.InventoryItem]) error {
		now := s.now()
		filtered := inventory.Filter(c.entries, q, now)
		items := make([]ItemView, 0, len(filtered))
		for _, item := range filtered {
			items = append(items, ItemView{
				InventoryItem:  item,
				Expiry:         inventory.Classify(item.ExpiryDate, now),
				RelativeExpiry: inventory.RelativeLabel(item.ExpiryDate, now),
			})
		}
		view = &InventoryView{
			Items:   items,
			Facets:  inventory.Facets(c.entries, now),
			Summary: inventory.Summarize(c.entries, now),
		}
		return nil
	})
	return view, err
}

// Items returns a copy of every item in the collection, in any status.
func (s *InventoryService) Items(ctx context.Context, owner string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.withCollection(ctx, owner, func(c *collection[models.InventoryItem]) error {
		items = c.snapshot()
		return nil
	})
	return items, err
}

func (s *InventoryService) Get(ctx context.Context, owner, id string) (models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.withCollection(ctx, owner, func(c *collection[models.InventoryItem]) error {
		i := indexOfItem(c.entries, id)
		if i < 0 {
			return ErrItemNotFound
		}
		item = c.entries[i]
		return nil
	})
	return item, err
}

// Add stores a new active item. The id is assigned when empty and must be
// unique within the collection.
func (s *InventoryService) Add(ctx context.Context, owner string, item models.InventoryItem) (models.InventoryItem, error) {
	var added models.InventoryItem
	err := s.withCollection(ctx, owner, func(c *collection[models.InventoryItem]) error {
		var err error
		added, err = s.add(ctx, owner, c, item)
		return err
	})
	return added, err
}

func (s *InventoryService) add(ctx context.Context, owner string, c *collection[models.InventoryItem], item models.InventoryItem) (models.InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return models.InventoryItem{}, &inventory.ValidationError{Field: "name", Message: "must not be empty"}
	}
	item.Category = strings.TrimSpace(item.Category)
	if item.ID == "" {
		item.ID = uuid.New().String()
	} else if isNumericID(item.ID) {
		return models.InventoryItem{}, &inventory.ValidationError{Field: "id", Message: "numeric ids are reserved for stored records"}
	} else if indexOfItem(c.entries, item.ID) >= 0 {
		return models.InventoryItem{}, &inventory.ValidationError{Field: "id", Message: "already exists"}
	}
	item.AddedAt = s.now()
	item.Status = models.StatusActive
	item.UsageProgress = 0
	item.ConsumedAt = nil
	item.WastedAt = nil

	id, err := s.store.AddItem(ctx, owner, item)
	if err != nil {
		log.Printf("[InventoryService] Failed to add item %q: %v", item.Name, err)
		return models.InventoryItem{}, collaboratorError("add item", err)
	}
	item.ID = id
	c.entries = append(c.entries, item)
	return item, nil
}

// ImportDrafts adds one active item per confirmed draft, in order. It stops
// at the first failure and returns the items added before it.
func (s *InventoryService) ImportDrafts(ctx context.Context, owner string, drafts []models.ItemDraft) ([]models.InventoryItem, error) {
	var added []models.InventoryItem
	err := s.withCollection(ctx, owner, func(c *collection[models.InventoryItem]) error {
		for _, d := range drafts {
			item, err := s.add(ctx, owner, c, models.InventoryItem{
				Name:       d.Name,
				Category:   d.Category,
				Quantity:   d.Quantity,
				ExpiryDate: d.ExpiryDate,
				Emoji:      d.Emoji,
				Notes:      d.SuggestedUse,
			})
			if err != nil {
				return err
			}
			added = append(added, item)
		}
		return nil
	})
	if err == nil {
		log.Printf("[InventoryService] Imported %d drafts for %s", len(added), owner)
	}
	return added, err
}

// RecordUsage sets the usage progress of an active item.
func (s *InventoryService) RecordUsage(ctx context.Context, owner, id string, progress int) (models.InventoryItem, error) {
	return s.mutate(ctx, owner, id, func(item models.InventoryItem, now time.Time) (models.InventoryItem, error) {
		return inventory.RecordUsage(item, progress, now)
	})
}

func (s *InventoryService) MarkWasted(ctx context.Context, owner, id string) (models.InventoryItem, error) {
	return s.mutate(ctx, owner, id, inventory.MarkWasted)
}

func (s *InventoryService) Edit(ctx context.Context, owner, id string, patch inventory.ItemPatch) (models.InventoryItem, error) {
	return s.mutate(ctx, owner, id, func(item models.InventoryItem, now time.Time) (models.InventoryItem, error) {
		return inventory.Edit(item, patch, now)
	})
}

// mutate applies a lifecycle function, persists the result and only then
// replaces the local copy.
func (s *InventoryService) mutate(ctx context.Context, owner, id string, fn func(models.InventoryItem, time.Time) (models.InventoryItem, error)) (models.InventoryItem, error) {
	var updated models.InventoryItem
	err := s.withCollection(ctx, owner, func(c *collection[models.InventoryItem]) error {
		i := indexOfItem(c.entries, id)
		if i < 0 {
			return ErrItemNotFound
		}
		current := c.entries[i]
		next, err := fn(current, s.now())
		if err != nil {
			return err
		}

		if err := s.store.UpdateItem(ctx, owner, next); err != nil {
			log.Printf("[InventoryService] Failed to update item %s: %v", id, err)
			if errors.Is(err, database.ErrNotFound) {
				return ErrItemNotFound
			}
			return collaboratorError("update item", err)
		}
		c.entries[i] = next
		updated = next

		if next.Status != current.Status && s.recorder != nil {
			s.recorder.Transition(string(next.Status))
		}
		return nil
	})
	return updated, err
}

// Delete removes an item in any status.
func (s *InventoryService) Delete(ctx context.Context, owner, id string) error {
	return s.withCollection(ctx, owner, func(c *collection[models.InventoryItem]) error {
		i := indexOfItem(c.entries, id)
		if i < 0 {
			return ErrItemNotFound
		}
		if err := s.store.DeleteItem(ctx, owner, id); err != nil && !errors.Is(err, database.ErrNotFound) {
			log.Printf("[InventoryService] Failed to delete item %s: %v", id, err)
			return collaboratorError("delete item", err)
		}
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
		return nil
	})
}

// Refresh drops the cached collection so the next call reloads it.
func (s *InventoryService) Refresh(owner string) {
	s.sessions.forget(owner)
}

func indexOfItem(items []models.InventoryItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// isNumericID reports whether id has the form of a native storage key, which
// legacy records use as their id.
func isNumericID(id string) bool {
	_, err := strconv.ParseUint(id, 10, 64)
	return err == nil
}
