package ports

import (
	"context"

	"github.com/warehouse-suite/user-service/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Lookup misses are reported as domain.ErrUserNotFound, never as a nil user
// with a nil error; infrastructure failures are returned wrapped.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, filter, update map[string]any) (*domain.User, error)
}
