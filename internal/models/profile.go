package models

// UserProfile holds the local user preferences: a display name and the
// addresses that receive expiry notifications.
type UserProfile struct {
	Name   string   `json:"name" yaml:"name"`
	Emails []string `json:"emails" yaml:"emails"`
}
