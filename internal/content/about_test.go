package content

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawnsgambit/club-api/internal/cms"
)

func TestAboutAllJoinsSections(t *testing.T) {
	var calls int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch r.URL.Path {
		case "/api/team-members":
			w.Write([]byte(`{"data": [{"id": 1, "attributes": {"name": "Ada", "photo": {"data": {"id": 3, "attributes": {"url": "/uploads/ada.png"}}}}}]}`))
		case "/api/partners":
			w.Write([]byte(`{"data": [{"id": 1, "attributes": {"name": "Chess Shop"}}]}`))
		case "/api/press-articles":
			w.Write([]byte(`{"data": []}`))
		case "/api/timeline-events":
			w.Write([]byte(`{"data": [{"id": 1, "attributes": {"year": 2019}}, {"id": 2, "attributes": {"year": 2021}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	data, err := NewAbout(c).All(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 4, calls)
	require.Len(t, data.Team, 1)
	require.Len(t, data.Partners, 1)
	require.Empty(t, data.Press)
	require.Len(t, data.Timeline, 2)

	photo := data.Team[0].Record("photo")
	require.NotNil(t, photo)
	require.Contains(t, photo.String("url"), "/uploads/ada.png")
}

func TestAboutAllFailsWhenAnySectionFails(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/partners" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data": []}`))
	})

	_, err := NewAbout(c).All(context.Background())
	require.Error(t, err)
	require.Equal(t, http.StatusInternalServerError, cms.StatusOf(err))
}

func TestFlattenPhotoFormatsFallback(t *testing.T) {
	r := cms.Record{
		"id": float64(1),
		"photo": map[string]any{
			"formats": map[string]any{
				"small": map[string]any{"url": "/uploads/small.png"},
			},
		},
	}
	flattenPhoto(r)
	require.Equal(t, "/uploads/small.png", r.Record("photo").String("url"))

	missing := cms.Record{"id": float64(2)}
	flattenPhoto(missing)
	require.Nil(t, missing["photo"])
}
