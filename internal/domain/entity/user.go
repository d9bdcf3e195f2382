package entity

// Role rol del usuario según el servidor remoto.
type Role string

// Roles válidos para Identity.
const (
	RoleUser   Role = "USER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

// Valid indica si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Identity usuario autenticado de la sesión actual. Solo SessionStore la crea o destruye.
type Identity struct {
	ID       int64
	Email    string
	FullName string
	Role     Role
}

// Valid indica si la identidad tiene los campos mínimos para operar.
func (i *Identity) Valid() bool {
	return i != nil && i.ID > 0 && i.Email != "" && i.Role.Valid()
}

// SameAs compara dos identidades por ID; nil solo es igual a nil.
func (i *Identity) SameAs(other *Identity) bool {
	if i == nil || other == nil {
		return i == nil && other == nil
	}
	return i.ID == other.ID
}

// HasRole indica si la identidad tiene alguno de los roles dados.
func (i *Identity) HasRole(roles ...Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// Registration datos para crear una cuenta (no autentica).
type Registration struct {
	Email    string
	Password string
	FullName string
	Role     Role
}
