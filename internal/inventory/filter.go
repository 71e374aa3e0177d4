package inventory

import (
	"strings"
	"time"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// AllCategories is the category sentinel meaning "no category filter".
const AllCategories = "全部"

// ExpiringLabel is the display label of the synthetic expiring facet.
const ExpiringLabel = "即将过期"

// StatusFilter selects between the full active view and the expiring view.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterExpiring StatusFilter = "expiring"
)

// Query is the view context of a filtered item list.
type Query struct {
	Status   StatusFilter `form:"status" json:"status"`
	Category string       `form:"category" json:"category"`
	Search   string       `form:"q" json:"search"`
}

// Filter returns the active items matching q in their original order.
func Filter(items []models.InventoryItem, q Query, now time.Time) []models.InventoryItem {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)
	if category == AllCategories {
		category = ""
	}

	out := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if !item.IsActive() {
			continue
		}
		if q.Status == FilterExpiring && !Classify(item.ExpiryDate, now).NeedsAttention() {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		if search != "" && !matches(item, search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matches(item models.InventoryItem, needle string) bool {
	for _, field := range []string{item.Name, item.Category, item.Quantity} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FacetKind separates the synthetic facets from real categories so that a
// category named like a synthetic facet stays distinct.
type FacetKind string

const (
	FacetAll      FacetKind = "all"
	FacetExpiring FacetKind = "expiring"
	FacetCategory FacetKind = "category"
)

type Facet struct {
	Kind  FacetKind `json:"kind"`
	Label string    `json:"label"`
}

// Query returns the query that selects this facet, keeping search text.
func (f Facet) Query(search string) Query {
	switch f.Kind {
	case FacetExpiring:
		return Query{Status: FilterExpiring, Category: AllCategories, Search: search}
	case FacetCategory:
		return Query{Status: FilterAll, Category: f.Label, Search: search}
	default:
		return Query{Status: FilterAll, Category: AllCategories, Search: search}
	}
}

// Facets lists "全部", then the expiring facet when any active item needs
// attention, then the distinct categories of active items in first-seen order.
func Facets(items []models.InventoryItem, now time.Time) []Facet {
	facets := []Facet{{Kind: FacetAll, Label: AllCategories}}

	seen := make(map[string]bool)
	var categories []Facet
	expiring := false
	for _, item := range items {
		if !item.IsActive() {
			continue
		}
		if !expiring && Classify(item.ExpiryDate, now).NeedsAttention() {
			expiring = true
		}
		c := item.Category
		if strings.TrimSpace(c) == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, Facet{Kind: FacetCategory, Label: c})
	}

	if expiring {
		facets = append(facets, Facet{Kind: FacetExpiring, Label: ExpiringLabel})
	}
	return append(facets, categories...)
}

// Summary counts items for a dashboard badge.
type Summary struct {
	Active       int `json:"active"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
	Consumed     int `json:"consumed"`
	Wasted       int `json:"wasted"`
}

func Summarize(items []models.InventoryItem, now time.Time) Summary {
	var s Summary
	for _, item := range items {
		switch {
		case item.Status == models.StatusConsumed:
			s.Consumed++
		case item.Status == models.StatusWasted:
			s.Wasted++
		default:
			s.Active++
			c := Classify(item.ExpiryDate, now)
			if c.IsExpired {
				s.Expired++
			} else if c.ExpiringSoon() {
				s.ExpiringSoon++
			}
		}
	}
	return s
}
