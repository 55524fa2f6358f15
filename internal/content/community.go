package content

import (
	"context"
	"fmt"
	"math"

	"github.com/pawnsgambit/club-api/internal/cms"
)

// statsSampleSize bounds the member fetch the aggregate stats are computed
// from.
const statsSampleSize = 1000

// Stats aggregates the community page headline numbers. ActiveToday and
// OnlineNow are estimates derived from the member count; the content API
// keeps no presence data.
type Stats struct {
	TotalMembers int `json:"totalMembers"`
	TotalGames   int `json:"totalGames"`
	AvgRating    int `json:"avgRating"`
	ActiveToday  int `json:"activeToday"`
	OnlineNow    int `json:"onlineNow"`
}

// Community fetches member profiles, achievements and aggregate stats.
type Community struct {
	c *cms.Client
}

func NewCommunity(c *cms.Client) *Community {
	return &Community{c: c}
}

// Members fetches a page of member profiles, highest rated first by default.
func (cm *Community) Members(ctx context.Context, opts ListOptions) ([]cms.Record, error) {
	return cm.c.GetList(ctx, "/community-members", opts.query(12, "rating:desc"))
}

// Profile fetches a single member profile.
func (cm *Community) Profile(ctx context.Context, id int64) (cms.Record, error) {
	return cm.c.GetOne(ctx, fmt.Sprintf("/community-members/%d", id), cms.NewQuery().Populate("*"))
}

// Search matches the query against member names and usernames,
// case-insensitively.
func (cm *Community) Search(ctx context.Context, query string) ([]cms.Record, error) {
	q := cms.NewQuery().
		OrContainsI(0, "name", query).
		OrContainsI(1, "username", query).
		Populate("*")
	return cm.c.GetList(ctx, "/community-members", q)
}

// TopMembers fetches the highest rated members.
func (cm *Community) TopMembers(ctx context.Context, limit int) ([]cms.Record, error) {
	if limit < 1 {
		limit = 10
	}
	q := cms.NewQuery().Sort("rating:desc").Limit(limit).Populate("*")
	return cm.c.GetList(ctx, "/community-members", q)
}

// Achievements fetches the achievement catalogue.
func (cm *Community) Achievements(ctx context.Context) ([]cms.Record, error) {
	return cm.c.GetList(ctx, "/achievements", cms.NewQuery().Populate("*"))
}

// AchievementsByType fetches achievements of one type (tournament,
// milestone, special).
func (cm *Community) AchievementsByType(ctx context.Context, achievementType string) ([]cms.Record, error) {
	q := cms.NewQuery().Eq("type", achievementType).Populate("*")
	return cm.c.GetList(ctx, "/achievements", q)
}

// CommunityStats computes the aggregate numbers from a member sample.
func (cm *Community) CommunityStats(ctx context.Context) (Stats, error) {
	q := cms.NewQuery().Limit(statsSampleSize)
	members, err := cm.c.GetList(ctx, "/community-members", q)
	if err != nil {
		return Stats{}, err
	}
	return statsFromMembers(members), nil
}

func statsFromMembers(members []cms.Record) Stats {
	s := Stats{TotalMembers: len(members)}
	if s.TotalMembers == 0 {
		return s
	}
	var ratingSum int64
	for _, m := range members {
		s.TotalGames += int(m.Int("totalGames"))
		ratingSum += m.Int("rating")
	}
	s.AvgRating = int(math.Round(float64(ratingSum) / float64(s.TotalMembers)))
	s.ActiveToday = s.TotalMembers * 15 / 100
	s.OnlineNow = s.TotalMembers * 5 / 100
	return s
}
