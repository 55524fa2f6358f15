package cms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pawnsgambit/club-api/internal/notify"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *notify.Bus, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	bus := notify.NewBus()
	c := New(Config{
		BaseURL:  srv.URL + "/api",
		MediaURL: srv.URL,
		APIToken: "static-token",
	}, bus, nil)
	return c, bus, srv
}

func TestClientGetListNormalizes(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/events", r.URL.Path)
		require.Equal(t, "Bearer static-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{"id": 1, "attributes": {"title": "Rapid"}},
			{"id": 2, "title": "Blitz"}
		]}`))
	}))

	list, err := c.GetList(context.Background(), "/events", NewQuery().Populate("*"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Rapid", list[0].String("title"))
	require.Equal(t, "Blitz", list[1].String("title"))
}

func TestClientTokenSourceOverridesStaticToken(t *testing.T) {
	var seen string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{"data": null}`))
	}))

	c.SetTokenSource(func() string { return "user-token" })
	_, err := c.GetOne(context.Background(), "/events/1", nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer user-token", seen)

	// An empty token source falls back to the static token.
	c.SetTokenSource(func() string { return "" })
	_, err = c.GetOne(context.Background(), "/events/2", nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer static-token", seen)
}

func TestClientUnauthorizedPublishesOnceAndRunsHook(t *testing.T) {
	c, bus, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"status": 401, "name": "UnauthorizedError", "message": "Invalid credentials"}}`))
	}))

	published := 0
	bus.Subscribe(notify.TopicAuthError, func(notify.Event) { published++ })
	hookRuns := 0
	c.SetUnauthorizedHook(func() { hookRuns++ })

	_, err := c.GetList(context.Background(), "/events", nil)
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))
	require.Equal(t, 1, published)
	require.Equal(t, 1, hookRuns)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "UnauthorizedError", apiErr.Name)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClientNonOKStatusWithoutBody(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.GetOne(context.Background(), "/events/9", nil)
	require.Error(t, err)
	require.Equal(t, http.StatusBadGateway, StatusOf(err))
}

func TestClientPutDataWrapsBody(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		var body map[string]any
		require.NoError(t, jsonDecode(r, &body))
		data, ok := body["data"].(map[string]any)
		require.True(t, ok, "request body must be wrapped in a data envelope")
		require.EqualValues(t, 6, data["currentParticipants"])
		w.Write([]byte(`{"data": {"id": 5, "attributes": {"currentParticipants": 6}}}`))
	}))

	rec, err := c.PutData(context.Background(), "/events/5", map[string]any{"currentParticipants": 6})
	require.NoError(t, err)
	require.EqualValues(t, 6, rec.Int("currentParticipants"))
}

func TestClientGetOneCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"data": {"id": 1, "title": "cached"}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/api", MediaURL: srv.URL, CacheTTL: time.Minute}, nil, nil)

	for i := 0; i < 3; i++ {
		rec, err := c.GetOne(context.Background(), "/podcasts/1", NewQuery().Populate("*"))
		require.NoError(t, err)
		require.Equal(t, "cached", rec.String("title"))
	}
	require.Equal(t, 1, calls)
}

func jsonDecode(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}
