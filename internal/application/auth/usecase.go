package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
	"github.com/jhoicas/obras-api/pkg/jwt"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Policy reglas de registro y promoción.
type Policy struct {
	AllowedEmailDomains []string // vacío: cualquier dominio
	AdminPromotionCode  string   // vacío: promoción de emergencia deshabilitada
	AdminMaxCount       int
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil y promoción de emergencia.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	policy   Policy
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, policy Policy, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, policy: policy, log: log}
}

// RegisterUser crea una cuenta con rol user. El email se normaliza a minúsculas.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: formato de email inválido", domain.ErrInvalidInput)
	}
	if !uc.domainAllowed(email) {
		return nil, fmt.Errorf("%w: dominio de email no permitido", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("usuario registrado")
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message: "login exitoso",
		Token:   token,
		User:    *ToUserResponse(user),
	}, nil
}

// Profile devuelve el usuario del token.
func (uc *AuthUseCase) Profile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.ProfileResponse{User: *ToUserResponse(user)}, nil
}

// EmergencyAdmin promueve al usuario si presenta el código configurado y hay cupo de administradores.
// Devuelve un token nuevo con el rol actualizado.
func (uc *AuthUseCase) EmergencyAdmin(ctx context.Context, userID int64, code string) (*dto.LoginResponse, error) {
	if uc.policy.AdminPromotionCode == "" || code != uc.policy.AdminPromotionCode {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsAdmin() {
		if err := CheckAdminCapacity(ctx, uc.userRepo, uc.policy.AdminMaxCount); err != nil {
			return nil, err
		}
		if err := uc.userRepo.UpdateRole(ctx, user.ID, entity.RoleAdmin); err != nil {
			return nil, err
		}
		user.Role = entity.RoleAdmin
		uc.log.Warn().Int64("user_id", user.ID).Msg("promoción de emergencia a administrador")
	}
	token, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Message: "rol de administrador asignado", Token: token, User: *ToUserResponse(user)}, nil
}

// CheckAdminCapacity devuelve ErrAdminLimit si ya hay max administradores.
// Es una lectura seguida de escritura: dos promociones simultáneas pueden superar el límite.
func CheckAdminCapacity(ctx context.Context, users repository.UserRepository, max int) error {
	n, err := users.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if n >= max {
		return domain.ErrAdminLimit
	}
	return nil
}

func (uc *AuthUseCase) issue(user *entity.User) (string, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.log.Error().Err(err).Int64("user_id", user.ID).Msg("firma de token")
		return "", fmt.Errorf("emitir token: %w", err)
	}
	return token, nil
}

func (uc *AuthUseCase) domainAllowed(email string) bool {
	if len(uc.policy.AllowedEmailDomains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	host := email[at+1:]
	for _, d := range uc.policy.AllowedEmailDomains {
		if host == d {
			return true
		}
	}
	return false
}

// ToUserResponse mapea la entidad sin el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
