package content

import (
	"context"
	"fmt"

	"github.com/pawnsgambit/club-api/internal/cms"
)

// News fetches news articles.
type News struct {
	c *cms.Client
}

func NewNews(c *cms.Client) *News {
	return &News{c: c}
}

// List fetches a page of articles, newest first by default.
func (n *News) List(ctx context.Context, opts ListOptions) ([]cms.Record, error) {
	return n.c.GetList(ctx, "/news-articles", opts.query(9, "publishDate:desc"))
}

// Featured fetches articles flagged for the homepage.
func (n *News) Featured(ctx context.Context, limit int) ([]cms.Record, error) {
	if limit < 1 {
		limit = 3
	}
	q := cms.NewQuery().Eq("featured", "true").Limit(limit).Populate("*")
	return n.c.GetList(ctx, "/news-articles", q)
}

// ByID fetches a single article.
func (n *News) ByID(ctx context.Context, id int64) (cms.Record, error) {
	return n.c.GetOne(ctx, fmt.Sprintf("/news-articles/%d", id), cms.NewQuery().Populate("*"))
}

// ByCategory fetches articles of one category (announcement, feature,
// interview).
func (n *News) ByCategory(ctx context.Context, category string) ([]cms.Record, error) {
	q := cms.NewQuery().Eq("category", category).Populate("*")
	return n.c.GetList(ctx, "/news-articles", q)
}

// Recent fetches the latest articles.
func (n *News) Recent(ctx context.Context, limit int) ([]cms.Record, error) {
	if limit < 1 {
		limit = 5
	}
	q := cms.NewQuery().Sort("publishDate:desc").Limit(limit).Populate("*")
	return n.c.GetList(ctx, "/news-articles", q)
}
