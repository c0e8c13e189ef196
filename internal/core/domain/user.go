package domain

import (
	"strings"
	"time"
)

// NormalizeEmail trims and lowercases a login identifier so lookups and
// uniqueness checks are case-insensitive. Every read path normalizes before
// touching the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User models an authenticated principal in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Sanitized returns a copy safe to hand to transport layers: the password
// digest is stripped so it can never be serialized, logged, or compared
// outside the auth service.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
