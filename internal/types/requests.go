package types

import (
	"time"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// CreateItemRequest represents the request body for adding an item
type CreateItemRequest struct {
	ID         string       `json:"id"`
	Name       string       `json:"name" binding:"required"`
	Category   string       `json:"category"`
	Quantity   string       `json:"quantity"`
	ExpiryDate *models.Date `json:"expiry_date"`
	// ExpiresIn and ExpiresUnit are an alternative to ExpiryDate,
	// e.g. 2 + "week".
	ExpiresIn   int    `json:"expires_in"`
	ExpiresUnit string `json:"expires_unit"`
	Emoji       string `json:"emoji"`
	ImageURL    string `json:"image_url"`
	Notes       string `json:"notes"`
}

// UsageRequest represents the request body for recording usage
type UsageRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// RecipeRequest is used for both creating and replacing a recipe
type RecipeRequest struct {
	Name        string   `json:"name" binding:"required"`
	Tags        []string `json:"tags"`
	Ingredients string   `json:"ingredients"`
	Steps       string   `json:"steps"`
	ImageURL    string   `json:"image_url"`
}

// ChatRequest carries one user turn plus the conversation so far
type ChatRequest struct {
	History []models.ChatMessage `json:"history"`
	Message string               `json:"message" binding:"required"`
}

// ChatResponse is the assistant's reply to a ChatRequest
type ChatResponse struct {
	Reply     models.ChatMessage `json:"reply"`
	Timestamp time.Time          `json:"timestamp"`
}

// UpdateProfileRequest represents the request body for updating the profile
type UpdateProfileRequest struct {
	Name   *string  `json:"name"`
	Emails []string `json:"emails"`
}

// SessionResponse is returned when an anonymous session is issued
type SessionResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
