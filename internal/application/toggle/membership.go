package toggle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
)

// Policy cuándo se refleja localmente una mutación.
type Policy int

const (
	// OptimisticAfter cambia el estado local solo tras la confirmación del servidor.
	OptimisticAfter Policy = iota
	// OptimisticBeforeRollback cambia antes de llamar y revierte si el servidor falla.
	OptimisticBeforeRollback
)

func (p Policy) String() string {
	if p == OptimisticBeforeRollback {
		return "optimistic-before"
	}
	return "optimistic-after"
}

// Mutator aplica en el servidor el nuevo valor want para key.
type Mutator[K comparable] func(ctx context.Context, key K, want bool) error

// ErrReset el conjunto se reinició antes de enviar la operación; no se llamó al servidor.
var ErrReset = errors.New("estado reiniciado; la operación no se envió")

// flight operación en curso sobre una clave. once garantiza una única llamada remota
// aunque un llamador se una después de que singleflight haya liberado la clave.
type flight struct {
	op      string
	waiters int
	once    sync.Once
	result  bool
	err     error
}

// Membership estado booleano por clave reflejado de un recurso remoto.
//
// Llamadas idénticas concurrentes sobre la misma clave se fusionan en una sola
// operación remota. Una operación distinta sobre una clave ocupada se rechaza con
// domain.ErrOperationInFlight. Reset inicia una época nueva y las respuestas de la
// época anterior ya no modifican el estado.
type Membership[K comparable] struct {
	policy Policy
	group  singleflight.Group

	mu       sync.Mutex
	epoch    uint64
	version  uint64
	members  map[K]bool
	touched  map[K]uint64 // versión del último cambio local confirmado por clave
	inflight map[K]*flight
}

// Stamp marca tomada antes de leer del servidor. Mark y Replace la usan para no pisar
// cambios locales posteriores a la lectura.
type Stamp struct {
	epoch   uint64
	version uint64
}

// NewMembership crea el conjunto vacío con la política dada.
func NewMembership[K comparable](policy Policy) *Membership[K] {
	return &Membership[K]{policy: policy, members: map[K]bool{}, touched: map[K]uint64{}, inflight: map[K]*flight{}}
}

// Policy política configurada.
func (m *Membership[K]) Policy() Policy { return m.policy }

// Contains valor local de key.
func (m *Membership[K]) Contains(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[key]
}

// Keys claves con valor true.
func (m *Membership[K]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]K, 0, len(m.members))
	for k, v := range m.members {
		if v {
			out = append(out, k)
		}
	}
	return out
}

// Stamp marca actual para una lectura remota.
func (m *Membership[K]) Stamp() Stamp {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stamp{epoch: m.epoch, version: m.version}
}

// Mark fija el valor leído del servidor, salvo que la época haya cambiado o la clave
// tenga una operación en curso o posterior a la lectura (su resultado manda).
func (m *Membership[K]) Mark(s Stamp, key K, present bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.epoch != m.epoch || m.newerLocked(s, key) {
		return false
	}
	m.set(key, present)
	return true
}

// Replace reemplaza el conjunto con el listado del servidor. Las claves con operación
// en curso o modificadas después de s conservan su valor actual.
func (m *Membership[K]) Replace(s Stamp, keys []K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.epoch != m.epoch {
		return false
	}
	next := make(map[K]bool, len(keys))
	for _, k := range keys {
		if !m.newerLocked(s, k) {
			next[k] = true
		}
	}
	for k, v := range m.members {
		if v && m.newerLocked(s, k) {
			next[k] = true
		}
	}
	m.members = next
	return true
}

// Reset vacía el conjunto y abre una época nueva.
func (m *Membership[K]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.members = map[K]bool{}
	m.touched = map[K]uint64{}
	m.inflight = map[K]*flight{}
}

// Toggle invierte el valor de key en el servidor y devuelve el valor resultante.
func (m *Membership[K]) Toggle(ctx context.Context, key K, mutate Mutator[K]) (bool, error) {
	return m.run(ctx, key, "toggle", func(current bool) bool { return !current }, mutate)
}

// Apply lleva key a want en el servidor aunque localmente ya tenga ese valor.
func (m *Membership[K]) Apply(ctx context.Context, key K, want bool, mutate Mutator[K]) (bool, error) {
	return m.run(ctx, key, fmt.Sprintf("apply:%t", want), func(bool) bool { return want }, mutate)
}

func (m *Membership[K]) run(ctx context.Context, key K, op string, decide func(bool) bool, mutate Mutator[K]) (bool, error) {
	m.mu.Lock()
	f, busy := m.inflight[key]
	if busy && f.op != op {
		current := m.members[key]
		m.mu.Unlock()
		return current, domain.ErrOperationInFlight
	}
	if !busy {
		f = &flight{op: op}
		m.inflight[key] = f
	}
	f.waiters++
	epoch := m.epoch
	m.mu.Unlock()

	defer m.leave(key, f)

	v, err, _ := m.group.Do(fmt.Sprintf("%d/%v/%s", epoch, key, op), func() (interface{}, error) {
		f.once.Do(func() {
			f.result, f.err = m.apply(ctx, epoch, key, decide, mutate)
		})
		return f.result, f.err
	})
	return v.(bool), err
}

func (m *Membership[K]) apply(ctx context.Context, epoch uint64, key K, decide func(bool) bool, mutate Mutator[K]) (bool, error) {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return false, ErrReset
	}
	prev := m.members[key]
	want := decide(prev)
	if m.policy == OptimisticBeforeRollback {
		m.set(key, want)
	}
	m.mu.Unlock()

	err := mutate(ctx, key, want)

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch {
		// La identidad cambió: el resultado pertenece al dueño anterior.
		if err != nil {
			return prev, err
		}
		return want, nil
	}
	if err != nil {
		if m.policy == OptimisticBeforeRollback && m.members[key] == want {
			m.set(key, prev)
		}
		return prev, err
	}
	m.set(key, want)
	m.version++
	m.touched[key] = m.version
	return want, nil
}

func (m *Membership[K]) newerLocked(s Stamp, key K) bool {
	if _, busy := m.inflight[key]; busy {
		return true
	}
	return m.touched[key] > s.version
}

func (m *Membership[K]) leave(key K, f *flight) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.waiters--
	if f.waiters == 0 && m.inflight[key] == f {
		delete(m.inflight, key)
	}
}

func (m *Membership[K]) set(key K, v bool) {
	if v {
		m.members[key] = true
		return
	}
	delete(m.members, key)
}
