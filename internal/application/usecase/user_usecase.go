package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/obras-api/internal/application/auth"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UserUseCase directorio de usuarios y gestión de roles.
type UserUseCase struct {
	repo     repository.UserRepository
	maxAdmin int
	log      zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, maxAdmin int, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, maxAdmin: maxAdmin, log: log}
}

// List directorio filtrado por nombre o email.
func (uc *UserUseCase) List(ctx context.Context, query string) (*dto.UserListResponse, error) {
	users, err := uc.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, *auth.ToUserResponse(u))
	}
	return out, nil
}

// ChangeRole cambia el rol de targetID. Promover por encima del máximo devuelve ErrAdminLimit.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actorID, targetID int64, role string) (*dto.UserResponse, error) {
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	user, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == role {
		return auth.ToUserResponse(user), nil
	}
	if role == entity.RoleAdmin {
		if err := auth.CheckAdminCapacity(ctx, uc.repo, uc.maxAdmin); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}
	user.Role = role
	uc.log.Info().Int64("actor_id", actorID).Int64("user_id", targetID).Str("user_role", role).Msg("rol actualizado")
	return auth.ToUserResponse(user), nil
}
