package content

import (
	"context"
	"fmt"

	"github.com/pawnsgambit/club-api/internal/cms"
)

// Podcasts fetches podcast episodes. Episode records are served as-is after
// normalization; the pages render their fields directly.
type Podcasts struct {
	c *cms.Client
}

func NewPodcasts(c *cms.Client) *Podcasts {
	return &Podcasts{c: c}
}

// List fetches a page of episodes, newest first by default.
func (p *Podcasts) List(ctx context.Context, opts ListOptions) ([]cms.Record, error) {
	return p.c.GetList(ctx, "/podcasts", opts.query(10, "publishDate:desc"))
}

// ByID fetches a single episode.
func (p *Podcasts) ByID(ctx context.Context, id int64) (cms.Record, error) {
	return p.c.GetOne(ctx, fmt.Sprintf("/podcasts/%d", id), cms.NewQuery().Populate("*"))
}

// Featured fetches the episode flagged as featured, or nil when none is.
func (p *Podcasts) Featured(ctx context.Context) (cms.Record, error) {
	q := cms.NewQuery().Eq("featured", "true").Limit(1).Populate("*")
	records, err := p.c.GetList(ctx, "/podcasts", q)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// IncrementListens bumps an episode's listen counter via a partial update.
func (p *Podcasts) IncrementListens(ctx context.Context, id int64, currentListens int) (cms.Record, error) {
	if currentListens < 0 {
		currentListens = 0
	}
	return p.c.PutData(ctx, fmt.Sprintf("/podcasts/%d", id), map[string]any{
		"listens": currentListens + 1,
	})
}

// Search matches the query against episode titles and descriptions,
// case-insensitively.
func (p *Podcasts) Search(ctx context.Context, query string) ([]cms.Record, error) {
	q := cms.NewQuery().
		OrContainsI(0, "title", query).
		OrContainsI(1, "description", query).
		Populate("*")
	return p.c.GetList(ctx, "/podcasts", q)
}

// ByTag fetches episodes tagged with the given slug.
func (p *Podcasts) ByTag(ctx context.Context, tagSlug string) ([]cms.Record, error) {
	q := cms.NewQuery().Eq("tags.slug", tagSlug).Populate("*")
	return p.c.GetList(ctx, "/podcasts", q)
}
