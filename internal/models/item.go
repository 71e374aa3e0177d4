package models

import "time"

// ItemStatus is the lifecycle state of an inventory item.
type ItemStatus string

const (
	StatusActive   ItemStatus = "active"
	StatusConsumed ItemStatus = "consumed"
	StatusWasted   ItemStatus = "wasted"
)

// Valid reports whether s is one of the known statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusActive, StatusConsumed, StatusWasted:
		return true
	}
	return false
}

// FridgeCategories is the advisory seed list offered when adding an item.
// Any other category string is accepted.
var FridgeCategories = []string{"蔬菜", "水果", "肉类", "海鲜", "乳制品", "饮品", "调味品", "零食", "其他"}

// InventoryItem is a single fridge entry.
type InventoryItem struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Quantity      string     `json:"quantity,omitempty"`
	ExpiryDate    *Date      `json:"expiry_date,omitempty"`
	AddedAt       time.Time  `json:"added_at"`
	Status        ItemStatus `json:"status"`
	UsageProgress int        `json:"usage_progress"`
	ConsumedAt    *time.Time `json:"consumed_at,omitempty"`
	WastedAt      *time.Time `json:"wasted_at,omitempty"`
	Emoji         string     `json:"emoji,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// IsActive treats a missing status as active.
func (i InventoryItem) IsActive() bool {
	return i.Status == StatusActive || i.Status == ""
}

// ItemDraft is an unpersisted candidate item produced by image recognition.
type ItemDraft struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Quantity     string `json:"quantity,omitempty"`
	ExpiryDate   *Date  `json:"expiry_date,omitempty"`
	Emoji        string `json:"emoji,omitempty"`
	SuggestedUse string `json:"suggested_use,omitempty"`
}
