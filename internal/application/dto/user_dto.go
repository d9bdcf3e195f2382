package dto

import "github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest entrada para registro; no inicia sesión.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=USER SELLER"`
}

// ToEntity convierte la entrada al tipo de dominio.
func (r RegisterRequest) ToEntity() entity.Registration {
	return entity.Registration{Email: r.Email, Password: r.Password, FullName: r.FullName, Role: entity.Role(r.Role)}
}

// UserResponse identidad activa (sin credenciales).
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// SessionResponse estado de la sesión; User es nil para invitados.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user"`
}

// NewSessionResponse construye la respuesta a partir de la identidad (nil = invitado).
func NewSessionResponse(id *entity.Identity) SessionResponse {
	if id == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		Authenticated: true,
		User:          &UserResponse{ID: id.ID, Email: id.Email, FullName: id.FullName, Role: string(id.Role)},
	}
}
