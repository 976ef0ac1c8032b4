package dto

import "time"

// RegisterRequest alta de cuenta.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,max=30"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"user_role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token firmado y usuario.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileResponse perfil del usuario autenticado.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// UserListResponse directorio de usuarios.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ChangeRoleRequest cambio de rol por un administrador.
type ChangeRoleRequest struct {
	Role string `json:"user_role" validate:"required,oneof=user admin"`
}

// EmergencyAdminRequest código de promoción de emergencia.
type EmergencyAdminRequest struct {
	Code string `json:"code" validate:"required"`
}
