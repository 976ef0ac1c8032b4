package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/application/auth"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/obras-api/pkg/jwt"
)

const secret = "secreto-auth-test"

func newUC(st *memory.Store, policy auth.Policy) *auth.AuthUseCase {
	if policy.AdminMaxCount == 0 {
		policy.AdminMaxCount = 2
	}
	return auth.NewAuthUseCase(st.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, policy, zerolog.Nop())
}

func register(t *testing.T, uc *auth.AuthUseCase, email string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: email, Password: "secreto1", Name: "Kim", Phone: "010-1111-2222"})
	require.NoError(t, err)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_RolSiempreUser(t *testing.T) {
	uc := newUC(memory.NewStore(), auth.Policy{})
	u := register(t, uc, "Kim@Obra.co.kr")

	assert.Equal(t, entity.RoleUser, u.Role, "el registro nunca asigna admin")
	assert.Equal(t, "kim@obra.co.kr", u.Email, "el email se normaliza")
}

func TestRegister_Validaciones(t *testing.T) {
	uc := newUC(memory.NewStore(), auth.Policy{AllowedEmailDomains: []string{"obra.co.kr"}})
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "no-es-email", Password: "secreto1", Name: "A", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@gmail.com", Password: "secreto1", Name: "A", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dominio fuera de la lista permitida")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@obra.co.kr", Password: "123", Name: "A", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password corto")

	register(t, uc, "a@obra.co.kr")
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@obra.co.kr", Password: "secreto1", Name: "A", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_EmiteTokenVerificable(t *testing.T) {
	uc := newUC(memory.NewStore(), auth.Policy{})
	u := register(t, uc, "lee@obra.co.kr")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "lee@obra.co.kr", Password: "secreto1"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.UserRole)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUC(memory.NewStore(), auth.Policy{})
	register(t, uc, "lee@obra.co.kr")
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "lee@obra.co.kr", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@obra.co.kr", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProfile_UsuarioInexistente(t *testing.T) {
	uc := newUC(memory.NewStore(), auth.Policy{})
	_, err := uc.Profile(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Promoción de emergencia
// ──────────────────────────────────────────────────────────────────────────────

func TestEmergencyAdmin(t *testing.T) {
	st := memory.NewStore()
	uc := newUC(st, auth.Policy{AdminPromotionCode: "rescate", AdminMaxCount: 1})
	ctx := context.Background()
	a := register(t, uc, "a@obra.co.kr")
	b := register(t, uc, "b@obra.co.kr")

	_, err := uc.EmergencyAdmin(ctx, a.ID, "incorrecto")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.EmergencyAdmin(ctx, a.ID, "rescate")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	_, err = uc.EmergencyAdmin(ctx, b.ID, "rescate")
	assert.ErrorIs(t, err, domain.ErrAdminLimit, "el límite de administradores se respeta")
}

func TestEmergencyAdmin_Deshabilitada(t *testing.T) {
	uc := newUC(memory.NewStore(), auth.Policy{})
	u := register(t, uc, "a@obra.co.kr")

	_, err := uc.EmergencyAdmin(context.Background(), u.ID, "")
	assert.ErrorIs(t, err, domain.ErrForbidden, "sin código configurado no hay promoción")
}
