package service

import (
	"errors"
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pageza/zenkitchen/backend/internal/inventory"
	"github.com/pageza/zenkitchen/backend/internal/models"
)

// DefaultProfileName is used until the user picks a name.
const DefaultProfileName = "Zen 用户"

// YAMLSettings keeps the profile in a local YAML file.
type YAMLSettings struct {
	path string
}

func NewYAMLSettings(path string) *YAMLSettings {
	return &YAMLSettings{path: path}
}

// Load reads the profile. A missing file yields the default profile.
func (s *YAMLSettings) Load() (models.UserProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.UserProfile{Name: DefaultProfileName, Emails: []string{}}, nil
		}
		return models.UserProfile{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var profile models.UserProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if profile.Emails == nil {
		profile.Emails = []string{}
	}
	return profile, nil
}

// Save writes the profile through a temporary file so a crash never leaves
// a truncated file behind.
func (s *YAMLSettings) Save(profile models.UserProfile) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// ProfileService serves the profile from memory and saves every change.
type ProfileService struct {
	repo    SettingsRepository
	mu      sync.RWMutex
	profile models.UserProfile
}

// NewProfileService loads the profile once at startup.
func NewProfileService(repo SettingsRepository) (*ProfileService, error) {
	profile, err := repo.Load()
	if err != nil {
		return nil, err
	}
	return &ProfileService{repo: repo, profile: profile}, nil
}

func (s *ProfileService) Get() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.profile
	p.Emails = append([]string{}, s.profile.Emails...)
	return p
}

// Update applies the non-nil fields. Emails are trimmed, validated and
// de-duplicated.
func (s *ProfileService) Update(name *string, emails []string) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.profile
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return models.UserProfile{}, &inventory.ValidationError{Field: "name", Message: "must not be empty"}
		}
		next.Name = n
	}
	if emails != nil {
		cleaned := make([]string, 0, len(emails))
		seen := make(map[string]bool)
		for _, e := range emails {
			e = strings.TrimSpace(e)
			if e == "" {
				continue
			}
			addr, err := mail.ParseAddress(e)
			if err != nil {
				return models.UserProfile{}, &inventory.ValidationError{Field: "emails", Message: fmt.Sprintf("invalid address %q", e)}
			}
			key := strings.ToLower(addr.Address)
			if seen[key] {
				continue
			}
			seen[key] = true
			cleaned = append(cleaned, addr.Address)
		}
		next.Emails = cleaned
	}

	if err := s.repo.Save(next); err != nil {
		log.Printf("[ProfileService] Failed to save profile: %v", err)
		return models.UserProfile{}, collaboratorError("save profile", err)
	}
	s.profile = next
	out := next
	out.Emails = append([]string{}, next.Emails...)
	return out, nil
}
