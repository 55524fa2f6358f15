package auth

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/pawnsgambit/club-api/internal/cms"
	"github.com/pawnsgambit/club-api/internal/notify"
)

// Manager owns one persisted session: the bearer token and cached user
// record of whoever is signed in. It binds itself to the CMS client so every
// outgoing call authenticates as that user, and it reacts to the 401 signal
// by falling back to signed-out. There is no token refresh; expiry is
// detected reactively through 401 responses.
type Manager struct {
	api   *API
	store Store
	bus   *notify.Bus
	log   *zap.Logger

	mu       sync.Mutex
	signedIn bool
}

// NewManager wires the manager into the client: a token source reading the
// persisted token, a 401 hook clearing the persisted pair, and a
// subscription resetting in-memory state when the auth-error signal fires.
func NewManager(client *cms.Client, store Store, bus *notify.Bus, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		api:   NewAPI(client),
		store: store,
		bus:   bus,
		log:   log,
	}
	m.signedIn = m.IsAuthenticated(context.Background())

	client.SetTokenSource(func() string {
		tok, err := store.Get(context.Background(), KeyToken)
		if err != nil {
			return ""
		}
		return tok
	})
	client.SetUnauthorizedHook(m.clearStorage)
	bus.Subscribe(notify.TopicAuthError, func(notify.Event) {
		m.mu.Lock()
		m.signedIn = false
		m.mu.Unlock()
	})
	return m
}

// Register creates an account, persists the returned session and signs in.
func (m *Manager) Register(ctx context.Context, username, email, password string) (*Session, error) {
	s, err := m.api.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	m.persist(ctx, s)
	return s, nil
}

// Login signs in and persists the returned session.
func (m *Manager) Login(ctx context.Context, identifier, password string) (*Session, error) {
	s, err := m.api.Login(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	m.persist(ctx, s)
	return s, nil
}

// Logout clears the persisted pair and broadcasts the session-ended signal.
func (m *Manager) Logout(ctx context.Context) {
	m.clearStorage()
	m.mu.Lock()
	m.signedIn = false
	m.mu.Unlock()
	m.bus.Publish(notify.TopicSessionEnded)
}

// CurrentUser refetches the signed-in user with the stored token and updates
// the cached record. A failed fetch signs out; this is the only automatic
// recovery in the session lifecycle.
func (m *Manager) CurrentUser(ctx context.Context) (cms.Record, error) {
	token, err := m.store.Get(ctx, KeyToken)
	if err != nil || token == "" {
		return nil, nil
	}
	user, err := m.api.CurrentUser(ctx, token)
	if err != nil {
		m.log.Info("stored token rejected, signing out", zap.Error(err))
		m.Logout(ctx)
		return nil, err
	}
	if raw, err := json.Marshal(user); err == nil {
		_ = m.store.Set(ctx, KeyUser, string(raw))
	}
	return user, nil
}

// SignedIn reports the in-memory session state. It flips to false when the
// auth-error signal fires, independently of who cleared the storage.
func (m *Manager) SignedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signedIn
}

// IsAuthenticated reports whether a token is persisted.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	tok, err := m.store.Get(ctx, KeyToken)
	return err == nil && tok != ""
}

// StoredUser returns the cached user record, or nil when absent or
// unparseable.
func (m *Manager) StoredUser(ctx context.Context) cms.Record {
	raw, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		return nil
	}
	var user map[string]any
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return cms.Record(user)
}

// ChangePassword updates the signed-in user's password.
func (m *Manager) ChangePassword(ctx context.Context, current, password, confirmation string) error {
	token, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return ErrNotFound
	}
	return m.api.ChangePassword(ctx, token, current, password, confirmation)
}

// ForgotPassword requests a reset code for the given address.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	return m.api.ForgotPassword(ctx, email)
}

// ResetPassword redeems a reset code and persists the fresh session.
func (m *Manager) ResetPassword(ctx context.Context, code, password, confirmation string) (*Session, error) {
	s, err := m.api.ResetPassword(ctx, code, password, confirmation)
	if err != nil {
		return nil, err
	}
	m.persist(ctx, s)
	return s, nil
}

func (m *Manager) persist(ctx context.Context, s *Session) {
	if s.Token == "" {
		return
	}
	if err := m.store.Set(ctx, KeyToken, s.Token); err != nil {
		m.log.Warn("persist token failed", zap.Error(err))
	}
	if raw, err := json.Marshal(s.User); err == nil {
		if err := m.store.Set(ctx, KeyUser, string(raw)); err != nil {
			m.log.Warn("persist user failed", zap.Error(err))
		}
	}
	m.mu.Lock()
	m.signedIn = true
	m.mu.Unlock()
}

func (m *Manager) clearStorage() {
	ctx := context.Background()
	_ = m.store.Delete(ctx, KeyToken)
	_ = m.store.Delete(ctx, KeyUser)
}
