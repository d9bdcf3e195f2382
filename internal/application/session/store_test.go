package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/session"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/infrastructure/sqlite"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

var testToken = session.TokenConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "storefront-test", TTLMinutes: 60}

type fakeAuth struct {
	identity  *entity.Identity
	err       error
	registers []entity.Registration
}

func (f *fakeAuth) Authenticate(_ context.Context, email, _ string) (*entity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := *f.identity
	id.Email = email
	return &id, nil
}

func (f *fakeAuth) Register(_ context.Context, in entity.Registration) error {
	f.registers = append(f.registers, in)
	return f.err
}

type memStorage struct {
	mu     sync.Mutex
	data   map[string]string
	putErr error
}

func newMemStorage() *memStorage { return &memStorage{data: map[string]string{}} }

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStorage) Close() error { return nil }

type change struct{ prev, next *entity.Identity }

type recordingListener struct {
	mu      sync.Mutex
	changes []change
}

func (r *recordingListener) OnIdentityChange(_ context.Context, prev, next *entity.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change{prev, next})
}

func seller() *entity.Identity {
	return &entity.Identity{ID: 7, Email: "ana@eco.test", FullName: "Ana", Role: entity.RoleSeller}
}

func TestLogin_PersisteYNotifica(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	store := session.NewStore(&fakeAuth{identity: seller()}, storage, testToken, logger.NewNop())
	l := &recordingListener{}
	store.Subscribe(l)

	id, err := store.Login(ctx, " ana@eco.test ", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.ID)
	assert.Equal(t, "ana@eco.test", store.Current().Email)

	raw, ok, _ := storage.Get(ctx, session.StorageKey)
	require.True(t, ok)
	assert.NotContains(t, raw, "secret")

	require.Len(t, l.changes, 1)
	assert.Nil(t, l.changes[0].prev)
	assert.Equal(t, int64(7), l.changes[0].next.ID)
}

func TestLogin_CredencialesInvalidas_NoCambiaEstado(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	rejected := &domain.RemoteError{Op: "login", Status: 401, Message: "Invalid email or password", Kind: domain.ErrAuthentication}
	store := session.NewStore(&fakeAuth{err: rejected}, storage, testToken, logger.NewNop())
	l := &recordingListener{}
	store.Subscribe(l)

	_, err := store.Login(ctx, "ana@eco.test", "mala")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Equal(t, "Invalid email or password", domain.UserMessage(err))
	assert.Nil(t, store.Current())
	assert.Empty(t, storage.data)
	assert.Empty(t, l.changes)
}

func TestLogin_CamposVacios(t *testing.T) {
	store := session.NewStore(&fakeAuth{identity: seller()}, newMemStorage(), testToken, logger.NewNop())
	_, err := store.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_FalloAlPersistir_NoEstableceSesion(t *testing.T) {
	storage := newMemStorage()
	storage.putErr = errors.New("disco lleno")
	store := session.NewStore(&fakeAuth{identity: seller()}, storage, testToken, logger.NewNop())

	_, err := store.Login(context.Background(), "ana@eco.test", "secret")
	require.Error(t, err)
	assert.Nil(t, store.Current())
}

func TestLogout_LimpiaTodoYNotifica(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	store := session.NewStore(&fakeAuth{identity: seller()}, storage, testToken, logger.NewNop())
	l := &recordingListener{}
	store.Subscribe(l)

	_, err := store.Login(ctx, "ana@eco.test", "secret")
	require.NoError(t, err)
	store.Logout(ctx)

	assert.Nil(t, store.Current())
	_, ok, _ := storage.Get(ctx, session.StorageKey)
	assert.False(t, ok)
	require.Len(t, l.changes, 2)
	assert.Equal(t, int64(7), l.changes[1].prev.ID)
	assert.Nil(t, l.changes[1].next)
}

func TestRestore_SinRegistro_Invitado(t *testing.T) {
	store := session.NewStore(&fakeAuth{}, newMemStorage(), testToken, logger.NewNop())
	assert.Nil(t, store.Restore(context.Background()))
	assert.Nil(t, store.Current())
}

func TestRestore_RegistroCorrupto_InvitadoYSeBorra(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.data[session.StorageKey] = `{"id":7,"email":`
	store := session.NewStore(&fakeAuth{}, storage, testToken, logger.NewNop())
	l := &recordingListener{}
	store.Subscribe(l)

	assert.Nil(t, store.Restore(ctx))
	_, ok, _ := storage.Get(ctx, session.StorageKey)
	assert.False(t, ok, "el registro ilegible debe eliminarse")
	assert.Empty(t, l.changes)
}

func TestRestore_FirmaDeOtroSecreto_Invitado(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	other := session.NewStore(&fakeAuth{identity: seller()}, storage, session.TokenConfig{Secret: "otro", Issuer: testToken.Issuer, TTLMinutes: 60}, logger.NewNop())
	_, err := other.Login(ctx, "ana@eco.test", "secret")
	require.NoError(t, err)

	store := session.NewStore(&fakeAuth{}, storage, testToken, logger.NewNop())
	assert.Nil(t, store.Restore(ctx))
}

func TestRestore_SesionVencida_Invitado(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	expired := testToken
	expired.TTLMinutes = -1
	writer := session.NewStore(&fakeAuth{identity: seller()}, storage, expired, logger.NewNop())
	_, err := writer.Login(ctx, "ana@eco.test", "secret")
	require.NoError(t, err)

	store := session.NewStore(&fakeAuth{}, storage, testToken, logger.NewNop())
	assert.Nil(t, store.Restore(ctx))
	_, ok, _ := storage.Get(ctx, session.StorageKey)
	assert.False(t, ok)
}

// La sesión sobrevive a un reinicio del proceso usando el archivo SQLite.
func TestRestore_TrasReinicio_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	first, err := sqlite.Open(path)
	require.NoError(t, err)
	store := session.NewStore(&fakeAuth{identity: seller()}, first, testToken, logger.NewNop())
	_, err = store.Login(ctx, "ana@eco.test", "secret")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlite.Open(path)
	require.NoError(t, err)
	defer second.Close()
	restored := session.NewStore(&fakeAuth{}, second, testToken, logger.NewNop())
	l := &recordingListener{}
	restored.Subscribe(l)

	id := restored.Restore(ctx)
	require.NotNil(t, id)
	assert.Equal(t, int64(7), id.ID)
	assert.Equal(t, entity.RoleSeller, id.Role)
	require.Len(t, l.changes, 1)
	assert.Nil(t, l.changes[0].prev)
}

func TestRequireRole(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(&fakeAuth{identity: seller()}, newMemStorage(), testToken, logger.NewNop())

	_, err := store.RequireRole()
	assert.ErrorIs(t, err, domain.ErrNoIdentity)

	_, err = store.Login(ctx, "ana@eco.test", "secret")
	require.NoError(t, err)

	id, err := store.RequireRole(entity.RoleSeller, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.ID)

	_, err = store.RequireRole(entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrAuthorization)
}

func TestRegister_NoAutenticaYRechazaAdmin(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{identity: seller()}
	store := session.NewStore(auth, newMemStorage(), testToken, logger.NewNop())

	err := store.Register(ctx, entity.Registration{Email: "b@eco.test", Password: "x", FullName: "B"})
	require.NoError(t, err)
	require.Len(t, auth.registers, 1)
	assert.Equal(t, entity.RoleUser, auth.registers[0].Role)
	assert.Nil(t, store.Current())

	err = store.Register(ctx, entity.Registration{Email: "c@eco.test", Password: "x", FullName: "C", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, auth.registers, 1)
}

// La copia devuelta por Current no permite mutar la identidad interna.
func TestCurrent_DevuelveCopia(t *testing.T) {
	store := session.NewStore(&fakeAuth{identity: seller()}, newMemStorage(), testToken, logger.NewNop())
	_, err := store.Login(context.Background(), "ana@eco.test", "secret")
	require.NoError(t, err)

	c := store.Current()
	c.Role = entity.RoleAdmin
	assert.Equal(t, entity.RoleSeller, store.Current().Role)
}
