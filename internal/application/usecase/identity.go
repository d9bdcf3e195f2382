package usecase

import "github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"

// IdentitySource identidad activa (la implementa session.Store).
type IdentitySource interface {
	RequireRole(roles ...entity.Role) (*entity.Identity, error)
}
