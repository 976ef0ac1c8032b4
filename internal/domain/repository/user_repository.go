package repository

import (
	"context"

	"github.com/jhoicas/obras-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// Las búsquedas sin resultado devuelven (nil, nil).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, query string) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	CountByRole(ctx context.Context, role string) (int, error)
}
