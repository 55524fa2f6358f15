package content

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVolunteersSubmit(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/volunteer-applications", r.URL.Path)
		var body struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, jsonDecode(r, &body))
		require.Equal(t, "Judit", body.Data["name"])
		require.Equal(t, "judit@club.test", body.Data["email"])
		w.Write([]byte(`{"data": {"id": 1, "attributes": {"name": "Judit"}}}`))
	})

	rec, err := NewVolunteers(c).Submit(context.Background(), Application{
		Name:  "  Judit ",
		Email: "judit@club.test",
		Role:  "coach",
	})
	require.NoError(t, err)
	require.Equal(t, "Judit", rec.String("name"))
}

func TestVolunteersSubmitRejectsIncomplete(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := NewVolunteers(c).Submit(context.Background(), Application{Name: "Judit"})
	require.ErrorIs(t, err, ErrIncompleteApplication)
}
