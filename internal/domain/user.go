package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_user_repository.go -package mocks github.com/docspace/docspace/internal/domain UserRepository

// User is an authenticated person. Identity fields are immutable.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeEmail lower-cases and trims an address, emails compare case-insensitively
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail normalizes and validates an address
func ValidateEmail(email string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "", NewValidationError("email is required")
	}
	if !govalidator.IsEmail(normalized) {
		return "", NewValidationError("email is not valid")
	}
	return normalized, nil
}

// Identity is what the identity provider asserts after authentication
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// UserRepository persists users
type UserRepository interface {
	// Upsert inserts the user when missing and reports whether it was created
	Upsert(ctx context.Context, user *User) (created bool, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail matches case-insensitively
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type contextKey string

// UserIDKey is the request context key holding the authenticated user id
const UserIDKey contextKey = "user_id"

// IdentityKey is the request context key holding the authenticated identity
const IdentityKey contextKey = "identity"

// WithIdentity stores an identity on the context
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, IdentityKey, id)
	return context.WithValue(ctx, UserIDKey, id.UserID)
}

// IdentityFromContext returns the authenticated identity, false when absent
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(Identity)
	return id, ok && id.UserID != ""
}
