package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawnsgambit/club-api/internal/cms"
	"github.com/pawnsgambit/club-api/internal/notify"
)

// fakeCMS mimics the auth surface of the content API.
func fakeCMS(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeSession := func(w http.ResponseWriter, username string) {
		json.NewEncoder(w).Encode(map[string]any{
			"jwt":  "jwt-" + username,
			"user": map[string]any{"id": 1, "username": username, "email": username + "@club.test"},
		})
	}

	mux.HandleFunc("/api/auth/local/register", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		writeSession(w, req["username"])
	})
	mux.HandleFunc("/api/auth/local", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "correct" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"status": 400, "name": "ValidationError", "message": "Invalid identifier or password"}}`))
			return
		}
		writeSession(w, req["identifier"])
	})
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt-magnus" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": {"status": 401, "name": "UnauthorizedError", "message": "Missing or invalid credentials"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "magnus", "email": "magnus@club.test"})
	})
	mux.HandleFunc("/api/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		writeSession(w, "reset")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestManager(t *testing.T) (*Manager, *MemoryStore, *notify.Bus) {
	t.Helper()
	srv := fakeCMS(t)
	bus := notify.NewBus()
	client := cms.New(cms.Config{BaseURL: srv.URL + "/api", MediaURL: srv.URL}, bus, nil)
	store := NewMemoryStore()
	return NewManager(client, store, bus, nil), store, bus
}

func TestManagerLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	require.False(t, m.IsAuthenticated(ctx))
	require.Nil(t, m.StoredUser(ctx))

	s, err := m.Login(ctx, "magnus", "correct")
	require.NoError(t, err)
	require.Equal(t, "jwt-magnus", s.Token)
	require.Equal(t, "magnus", s.User.String("username"))

	require.True(t, m.IsAuthenticated(ctx))
	require.True(t, m.SignedIn())
	require.Equal(t, "magnus", m.StoredUser(ctx).String("username"))
}

func TestManagerLoginFailureLeavesSignedOut(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	_, err := m.Login(ctx, "magnus", "wrong")
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, cms.StatusOf(err))
	require.False(t, m.IsAuthenticated(ctx))
}

func TestManagerLogoutClearsAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	m, store, bus := newTestManager(t)

	ended := 0
	bus.Subscribe(notify.TopicSessionEnded, func(notify.Event) { ended++ })

	_, err := m.Login(ctx, "magnus", "correct")
	require.NoError(t, err)

	m.Logout(ctx)
	require.False(t, m.IsAuthenticated(ctx))
	require.Nil(t, m.StoredUser(ctx))
	require.Equal(t, 1, ended)

	_, err = store.Get(ctx, KeyToken)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestManagerCurrentUserRefreshesCachedRecord(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	_, err := m.Login(ctx, "magnus", "correct")
	require.NoError(t, err)

	user, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "magnus", user.String("username"))
	require.Equal(t, "magnus@club.test", m.StoredUser(ctx).String("email"))
}

func TestManagerCurrentUserSignsOutOnRejectedToken(t *testing.T) {
	ctx := context.Background()
	m, store, bus := newTestManager(t)

	authErrors := 0
	bus.Subscribe(notify.TopicAuthError, func(notify.Event) { authErrors++ })

	// Plant a stale token directly in storage.
	require.NoError(t, store.Set(ctx, KeyToken, "expired"))
	require.NoError(t, store.Set(ctx, KeyUser, `{"id":1,"username":"magnus"}`))

	user, err := m.CurrentUser(ctx)
	require.Error(t, err)
	require.Nil(t, user)
	require.False(t, m.IsAuthenticated(ctx))
	require.False(t, m.SignedIn())
	require.Equal(t, 1, authErrors, "the 401 must be signalled exactly once")
}

func TestManagerCurrentUserWithoutToken(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	user, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestManagerResetPasswordPersistsNewSession(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	s, err := m.ResetPassword(ctx, "code-123", "newpass", "newpass")
	require.NoError(t, err)
	require.Equal(t, "jwt-reset", s.Token)
	require.True(t, m.IsAuthenticated(ctx))
}

func TestManagerStoredUserIgnoresCorruptJSON(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager(t)

	require.NoError(t, store.Set(ctx, KeyUser, "{not json"))
	require.Nil(t, m.StoredUser(ctx))
}
