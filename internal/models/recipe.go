package models

import (
	"strings"
	"time"
)

type Recipe struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tags        []string  `json:"tags"`
	Ingredients string    `json:"ingredients"`
	Steps       string    `json:"steps"`
	ImageURL    string    `json:"image_url,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// HasTag matches case-insensitively and ignores tag order.
func (r Recipe) HasTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, t := range r.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}
