package database

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pageza/zenkitchen/backend/internal/inventory"
	"github.com/pageza/zenkitchen/backend/internal/models"
)

// StringList stores a string slice as a JSON array in a text column.
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*a = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// itemRecord is the stored shape of an inventory item. RecordID is the
// storage-native key; ItemID is the domain identifier and may be empty in
// rows written before it existed.
type itemRecord struct {
	RecordID      uint         `gorm:"primaryKey;autoIncrement"`
	ItemID        string       `gorm:"size:64;index"`
	OwnerID       string       `gorm:"size:64;not null;index"`
	Name          string       `gorm:"size:255;not null"`
	Category      string       `gorm:"size:100"`
	Quantity      string       `gorm:"size:100"`
	ExpiryDate    *models.Date `gorm:"type:date"`
	AddedAt       time.Time
	Status        string `gorm:"size:16"`
	UsageProgress int
	ConsumedAt    *time.Time
	WastedAt      *time.Time
	Emoji         string `gorm:"size:16"`
	ImageURL      string `gorm:"size:512"`
	Notes         string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (itemRecord) TableName() string { return "inventory_items" }

// toDomain is the single place where stored items are normalized.
func (r itemRecord) toDomain() models.InventoryItem {
	id := r.ItemID
	if id == "" {
		id = strconv.FormatUint(uint64(r.RecordID), 10)
	}
	return inventory.Normalize(models.InventoryItem{
		ID:            id,
		Name:          r.Name,
		Category:      r.Category,
		Quantity:      r.Quantity,
		ExpiryDate:    r.ExpiryDate,
		AddedAt:       r.AddedAt,
		Status:        models.ItemStatus(r.Status),
		UsageProgress: r.UsageProgress,
		ConsumedAt:    r.ConsumedAt,
		WastedAt:      r.WastedAt,
		Emoji:         r.Emoji,
		ImageURL:      r.ImageURL,
		Notes:         r.Notes,
	})
}

// fill copies the domain fields onto the record, keeping its native key.
func (r *itemRecord) fill(owner string, item models.InventoryItem) {
	r.ItemID = item.ID
	r.OwnerID = owner
	r.Name = item.Name
	r.Category = item.Category
	r.Quantity = item.Quantity
	r.ExpiryDate = item.ExpiryDate
	r.AddedAt = item.AddedAt
	r.Status = string(item.Status)
	r.UsageProgress = item.UsageProgress
	r.ConsumedAt = item.ConsumedAt
	r.WastedAt = item.WastedAt
	r.Emoji = item.Emoji
	r.ImageURL = item.ImageURL
	r.Notes = item.Notes
}

type recipeRecord struct {
	RecordID    uint       `gorm:"primaryKey;autoIncrement"`
	RecipeID    string     `gorm:"size:64;index"`
	OwnerID     string     `gorm:"size:64;not null;index"`
	Name        string     `gorm:"size:255;not null"`
	Tags        StringList `gorm:"type:text"`
	Ingredients string     `gorm:"type:text"`
	Steps       string     `gorm:"type:text"`
	ImageURL    string     `gorm:"size:512"`
	AddedAt     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (recipeRecord) TableName() string { return "recipes" }

func (r recipeRecord) toDomain() models.Recipe {
	id := r.RecipeID
	if id == "" {
		id = strconv.FormatUint(uint64(r.RecordID), 10)
	}
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return models.Recipe{
		ID:          id,
		Name:        r.Name,
		Tags:        tags,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		ImageURL:    r.ImageURL,
		AddedAt:     r.AddedAt,
	}
}

func (r *recipeRecord) fill(owner string, recipe models.Recipe) {
	r.RecipeID = recipe.ID
	r.OwnerID = owner
	r.Name = recipe.Name
	r.Tags = StringList(recipe.Tags)
	r.Ingredients = recipe.Ingredients
	r.Steps = recipe.Steps
	r.ImageURL = recipe.ImageURL
	r.AddedAt = recipe.AddedAt
}
