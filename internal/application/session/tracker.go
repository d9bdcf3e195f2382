package session

import (
	"sync"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
)

// Tracker copia de la identidad vista por un componente dependiente. Cada Reset
// avanza la época; una respuesta remota emitida en una época anterior se descarta.
type Tracker struct {
	mu    sync.RWMutex
	owner *entity.Identity
	epoch uint64
}

// Reset adopta next como dueño y devuelve la nueva época.
func (t *Tracker) Reset(next *entity.Identity) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.owner = clone(next)
	t.epoch++
	return t.epoch
}

// Snapshot devuelve el dueño actual (copia) y la época.
func (t *Tracker) Snapshot() (*entity.Identity, uint64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return clone(t.owner), t.epoch
}

// Require como Snapshot pero exige sesión y, si se indican, alguno de los roles.
func (t *Tracker) Require(roles ...entity.Role) (*entity.Identity, uint64, error) {
	owner, epoch := t.Snapshot()
	if owner == nil {
		return nil, epoch, domain.ErrNoIdentity
	}
	if len(roles) > 0 && !owner.HasRole(roles...) {
		return nil, epoch, domain.ErrAuthorization
	}
	return owner, epoch, nil
}

// Current indica si epoch sigue siendo la vigente.
func (t *Tracker) Current(epoch uint64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.epoch == epoch
}
