package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// ErrNoRecognizedItems is returned when a recognition answer has no usable
// entries.
var ErrNoRecognizedItems = errors.New("no recognized items")

type analysisEntry struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	ExpiryDate   string `json:"expiryDate"`
	Quantity     string `json:"quantity"`
	SuggestedUse string `json:"suggestedUse"`
	Emoji        string `json:"emoji"`
}

type analysisResult struct {
	Items      []analysisEntry `json:"items"`
	TotalCount *float64        `json:"totalCount"`
}

// ParseAnalysis decodes a recognition answer into drafts. Entries without a
// name or category are dropped, as are expiry dates that do not parse.
// Markdown code fences around the JSON are tolerated.
func ParseAnalysis(raw string) ([]models.ItemDraft, error) {
	var result analysisResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}

	drafts := make([]models.ItemDraft, 0, len(result.Items))
	for _, e := range result.Items {
		d := models.ItemDraft{
			Name:         strings.TrimSpace(e.Name),
			Category:     strings.TrimSpace(e.Category),
			Quantity:     strings.TrimSpace(e.Quantity),
			Emoji:        strings.TrimSpace(e.Emoji),
			SuggestedUse: strings.TrimSpace(e.SuggestedUse),
		}
		if d.Name == "" || d.Category == "" {
			continue
		}
		if e.ExpiryDate != "" {
			if date, err := models.ParseDate(strings.TrimSpace(e.ExpiryDate)); err == nil {
				d.ExpiryDate = &date
			}
		}
		drafts = append(drafts, d)
	}

	if len(drafts) == 0 {
		return nil, ErrNoRecognizedItems
	}
	return drafts, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
