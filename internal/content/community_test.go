package content

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawnsgambit/club-api/internal/cms"
)

func TestStatsFromMembers(t *testing.T) {
	members := []cms.Record{
		{"id": float64(1), "rating": float64(2000), "totalGames": float64(120)},
		{"id": float64(2), "rating": float64(1500), "totalGames": float64(80)},
		{"id": float64(3), "rating": float64(1601), "totalGames": float64(0)},
	}

	s := statsFromMembers(members)
	require.Equal(t, 3, s.TotalMembers)
	require.Equal(t, 200, s.TotalGames)
	require.Equal(t, 1700, s.AvgRating)
}

func TestStatsFromMembersEmpty(t *testing.T) {
	s := statsFromMembers(nil)
	require.Equal(t, Stats{}, s)
}

func TestCommunityStatsFetchesSample(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/community-members", r.URL.Path)
		v := parseQuery(t, r.URL.RawQuery)
		require.Equal(t, "1000", v.Get("pagination[limit]"))
		w.Write([]byte(`{"data": [
			{"id": 1, "attributes": {"rating": 1800, "totalGames": 50}},
			{"id": 2, "attributes": {"rating": 1600, "totalGames": 30}}
		]}`))
	})

	s, err := NewCommunity(c).CommunityStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, s.TotalMembers)
	require.Equal(t, 80, s.TotalGames)
	require.Equal(t, 1700, s.AvgRating)
}

func TestCommunitySearchBuildsOrFilter(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		v := parseQuery(t, r.URL.RawQuery)
		require.Equal(t, "kasp", v.Get("filters[$or][0][name][$containsi]"))
		require.Equal(t, "kasp", v.Get("filters[$or][1][username][$containsi]"))
		w.Write([]byte(`{"data": [{"id": 9, "attributes": {"username": "kasparov_fan"}}]}`))
	})

	records, err := NewCommunity(c).Search(context.Background(), "kasp")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "kasparov_fan", records[0].String("username"))
}
