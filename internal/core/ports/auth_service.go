package ports

import (
	"context"

	"github.com/taskhive/task-api/internal/core/domain"
)

// AuthService turns credentials into verified principals and bearer tokens.
// Both operations return sanitized users (no password digest). Unknown email
// and wrong password are indistinguishable to callers: both surface as
// domain.ErrInvalidCredentials.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
