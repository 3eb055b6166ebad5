package ports

import (
	"context"

	"github.com/warehouse-suite/user-service/internal/core/domain"
)

type UserService interface {
	Register(ctx context.Context, user domain.User) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	GetByCode(ctx context.Context, code string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
