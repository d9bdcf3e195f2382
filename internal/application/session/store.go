package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	"github.com/jhoicas/ecobazaar-storefront/pkg/jwt"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

// StorageKey clave fija del único registro persistido (la identidad serializada).
const StorageKey = "eco_user"

// Listener recibe cada cambio de identidad. Debe tratarlo como "invalidar y volver a pedir",
// nunca como un diff. Se invoca con los cambios serializados, así que no debe bloquear
// ni llamar a Login/Logout.
type Listener interface {
	OnIdentityChange(ctx context.Context, prev, next *entity.Identity)
}

// ListenerFunc adaptador de función a Listener.
type ListenerFunc func(ctx context.Context, prev, next *entity.Identity)

// OnIdentityChange implementa Listener.
func (f ListenerFunc) OnIdentityChange(ctx context.Context, prev, next *entity.Identity) {
	f(ctx, prev, next)
}

// TokenConfig firma del sobre persistido.
type TokenConfig struct {
	Secret     string
	Issuer     string
	TTLMinutes int
}

// Store dueño exclusivo de la identidad activa del proceso (a lo sumo una).
type Store struct {
	auth    repository.AuthGateway
	storage repository.SessionStorage
	token   TokenConfig
	log     *logger.Logger

	changeMu  sync.Mutex // serializa login/logout/restore y sus notificaciones
	mu        sync.RWMutex
	current   *entity.Identity
	listeners []Listener
}

// NewStore construye el SessionStore. No restaura nada hasta llamar a Restore.
func NewStore(auth repository.AuthGateway, storage repository.SessionStorage, token TokenConfig, log *logger.Logger) *Store {
	return &Store{auth: auth, storage: storage, token: token, log: log.Component("session")}
}

// Subscribe registra un dependiente. Las notificaciones siguen el orden de suscripción.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Current devuelve una copia de la identidad activa o nil (invitado).
func (s *Store) Current() *entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

// RequireRole devuelve la identidad activa si tiene alguno de los roles.
// Sin roles solo exige que haya sesión.
func (s *Store) RequireRole(roles ...entity.Role) (*entity.Identity, error) {
	id := s.Current()
	if id == nil {
		return nil, domain.ErrNoIdentity
	}
	if len(roles) > 0 && !id.HasRole(roles...) {
		return nil, domain.ErrAuthorization
	}
	return id, nil
}

// Restore carga la identidad persistida al arrancar. Nunca falla: datos ausentes,
// vencidos, alterados o ilegibles dejan la sesión como invitado y se borran.
func (s *Store) Restore(ctx context.Context) *entity.Identity {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer la sesión persistida; se continúa como invitado")
		return nil
	}
	if !ok {
		return nil
	}
	id, err := s.decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("sesión persistida inválida; se descarta")
		if delErr := s.storage.Delete(ctx, StorageKey); delErr != nil {
			s.log.Error().Err(delErr).Msg("borrar sesión inválida")
		}
		return nil
	}

	prev := s.swap(id)
	s.log.Info().Int64("user_id", id.ID).Str("role", string(id.Role)).Msg("sesión restaurada")
	s.notify(ctx, prev, id)
	return clone(id)
}

// Login autentica contra el servidor y, solo si todo sale bien, guarda y persiste la identidad.
// Ante cualquier error no cambia el estado; domain.UserMessage(err) da el texto para el usuario.
func (s *Store) Login(ctx context.Context, email, password string) (*entity.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email y password son requeridos: %w", domain.ErrInvalidInput)
	}

	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	id, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		s.log.Info().Str("email", email).Err(err).Msg("login rechazado")
		return nil, err
	}
	raw, err := s.encode(id)
	if err != nil {
		return nil, fmt.Errorf("firmar sesión: %w", err)
	}
	if err := s.storage.Put(ctx, StorageKey, raw); err != nil {
		return nil, fmt.Errorf("persistir sesión: %w", err)
	}

	prev := s.swap(id)
	s.log.Info().Int64("user_id", id.ID).Str("role", string(id.Role)).Msg("login")
	s.notify(ctx, prev, id)
	return clone(id), nil
}

// Logout limpia la identidad y el registro persistido de forma incondicional.
// Un fallo del almacenamiento se registra pero no impide cerrar la sesión en memoria.
func (s *Store) Logout(ctx context.Context) {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	prev := s.swap(nil)
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		s.log.Error().Err(err).Msg("borrar sesión persistida")
	}
	if prev != nil {
		s.log.Info().Int64("user_id", prev.ID).Msg("logout")
	}
	s.notify(ctx, prev, nil)
}

// Register crea una cuenta en el servidor. No autentica ni toca la sesión actual.
// Solo se permiten los roles USER y SELLER; ADMIN no se crea por registro.
func (s *Store) Register(ctx context.Context, in entity.Registration) error {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return fmt.Errorf("email, password y nombre son requeridos: %w", domain.ErrInvalidInput)
	}
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
	if in.Role != entity.RoleUser && in.Role != entity.RoleSeller {
		return fmt.Errorf("rol %q no permitido en registro: %w", in.Role, domain.ErrInvalidInput)
	}
	return s.auth.Register(ctx, in)
}

func (s *Store) swap(next *entity.Identity) *entity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = clone(next)
	return prev
}

func (s *Store) notify(ctx context.Context, prev, next *entity.Identity) {
	s.mu.RLock()
	ls := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, l := range ls {
		l.OnIdentityChange(ctx, clone(prev), clone(next))
	}
}

func (s *Store) encode(id *entity.Identity) (string, error) {
	return jwt.Generate(s.token.Secret, jwt.Claims{
		UserID:   id.ID,
		Email:    id.Email,
		FullName: id.FullName,
		Role:     string(id.Role),
	}, s.token.Issuer, s.token.TTLMinutes)
}

func (s *Store) decode(raw string) (*entity.Identity, error) {
	c, err := jwt.Parse(s.token.Secret, s.token.Issuer, raw)
	if err != nil {
		return nil, err
	}
	id := &entity.Identity{ID: c.UserID, Email: c.Email, FullName: c.FullName, Role: entity.Role(c.Role)}
	if !id.Valid() {
		return nil, fmt.Errorf("identidad incompleta")
	}
	return id, nil
}

func clone(id *entity.Identity) *entity.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
