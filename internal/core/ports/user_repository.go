package ports

import (
	"context"

	"github.com/taskhive/task-api/internal/core/domain"
)

// UserRepository defines the interface for principal persistence.
// Uniqueness of email (case-insensitive) and username is enforced at the
// store; a violation surfaces as domain.ErrUserExists, including when two
// registrations race.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
