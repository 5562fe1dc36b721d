package entities

import "time"

// APIKey is a stored credential. Only the SHA-256 of the raw key is kept;
// the raw key is returned exactly once, at creation or rotation.
type APIKey struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Application string    `json:"application,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Principal is the resolved identity attached to an authenticated request
type Principal struct {
	KeyID       string
	Name        string
	Application string
}

// CreateAPIKeyInput creates a key, optionally bound to an application tenant
type CreateAPIKeyInput struct {
	Name        string
	Email       string
	Application string
}
