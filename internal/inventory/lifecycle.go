package inventory

import (
	"strings"
	"time"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// All lifecycle operations take and return items by value. On error the
// returned item is the zero value and the caller's copy is untouched.

// RecordUsage sets the usage progress of an active item. Reaching 100
// consumes the item. Progress may never go down.
func RecordUsage(item models.InventoryItem, progress int, now time.Time) (models.InventoryItem, error) {
	if progress < 0 || progress > 100 {
		return models.InventoryItem{}, &ValidationError{Field: "usage_progress", Message: "must be between 0 and 100"}
	}
	if !item.IsActive() {
		return models.InventoryItem{}, &InvalidStateError{Op: "record usage on", ItemID: item.ID, Status: item.Status}
	}
	if progress < item.UsageProgress {
		return models.InventoryItem{}, &ValidationError{Field: "usage_progress", Message: "cannot be lowered"}
	}

	item.Status = models.StatusActive
	if progress == 100 {
		item.Status = models.StatusConsumed
		consumedAt := now
		item.ConsumedAt = &consumedAt
	}
	item.UsageProgress = progress
	return item, nil
}

// MarkWasted moves an active item to wasted. Wasting an already wasted item
// is a no-op.
func MarkWasted(item models.InventoryItem, now time.Time) (models.InventoryItem, error) {
	switch {
	case item.Status == models.StatusWasted:
		return item, nil
	case !item.IsActive():
		return models.InventoryItem{}, &InvalidStateError{Op: "waste", ItemID: item.ID, Status: item.Status}
	}
	item.Status = models.StatusWasted
	wastedAt := now
	item.WastedAt = &wastedAt
	return item, nil
}

// ItemPatch lists the editable fields of an item. Nil fields are left alone.
// ClearExpiry removes the expiry date.
type ItemPatch struct {
	Name          *string            `json:"name"`
	Category      *string            `json:"category"`
	Quantity      *string            `json:"quantity"`
	ExpiryDate    *models.Date       `json:"expiry_date"`
	ClearExpiry   bool               `json:"clear_expiry"`
	Emoji         *string            `json:"emoji"`
	ImageURL      *string            `json:"image_url"`
	Notes         *string            `json:"notes"`
	Status        *models.ItemStatus `json:"status"`
	UsageProgress *int               `json:"usage_progress"`
}

// Edit overwrites descriptive fields in any status. ID and AddedAt cannot be
// patched. Progress and status follow the lifecycle: progress only moves up
// on an active item, and consumed and wasted are terminal. An explicit status
// re-establishes that status's invariants.
func Edit(item models.InventoryItem, patch ItemPatch, now time.Time) (models.InventoryItem, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.InventoryItem{}, &ValidationError{Field: "name", Message: "must not be empty"}
		}
		item.Name = name
	}
	if patch.Category != nil {
		item.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.ClearExpiry {
		item.ExpiryDate = nil
	} else if patch.ExpiryDate != nil {
		d := *patch.ExpiryDate
		item.ExpiryDate = &d
	}
	if patch.Emoji != nil {
		item.Emoji = *patch.Emoji
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.InventoryItem{}, &ValidationError{Field: "status", Message: "unknown status " + string(*patch.Status)}
	}

	// Progress goes through the same rules as RecordUsage, so 100 consumes.
	// Resending the current value is a no-op in any status.
	if patch.UsageProgress != nil && *patch.UsageProgress != item.UsageProgress {
		var err error
		if item, err = RecordUsage(item, *patch.UsageProgress, now); err != nil {
			return models.InventoryItem{}, err
		}
	}

	if patch.Status != nil {
		status := *patch.Status
		if !item.IsActive() && status != item.Status {
			return models.InventoryItem{}, &InvalidStateError{Op: "change status of", ItemID: item.ID, Status: item.Status}
		}
		item = applyStatus(item, status, now)
	}
	return item, nil
}

func applyStatus(item models.InventoryItem, status models.ItemStatus, now time.Time) models.InventoryItem {
	switch status {
	case models.StatusConsumed:
		item.UsageProgress = 100
		if item.Status != models.StatusConsumed || item.ConsumedAt == nil {
			t := now
			item.ConsumedAt = &t
		}
		item.WastedAt = nil
	case models.StatusWasted:
		if item.Status != models.StatusWasted || item.WastedAt == nil {
			t := now
			item.WastedAt = &t
		}
		item.ConsumedAt = nil
	case models.StatusActive:
		item.ConsumedAt = nil
		item.WastedAt = nil
	}
	item.Status = status
	return item
}

// Normalize applies the backward-compatibility defaults to an item read from
// storage: a missing status is active and progress is clamped to [0,100].
// A consumed item always reports 100.
func Normalize(item models.InventoryItem) models.InventoryItem {
	if item.Status == "" || !item.Status.Valid() {
		item.Status = models.StatusActive
	}
	if item.UsageProgress < 0 {
		item.UsageProgress = 0
	}
	if item.UsageProgress > 100 {
		item.UsageProgress = 100
	}
	if item.Status == models.StatusConsumed {
		item.UsageProgress = 100
	}
	return item
}
