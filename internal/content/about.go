package content

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pawnsgambit/club-api/internal/cms"
)

// AboutData bundles the four sections of the about page.
type AboutData struct {
	Team     []cms.Record `json:"team"`
	Partners []cms.Record `json:"partners"`
	Press    []cms.Record `json:"press"`
	Timeline []cms.Record `json:"timeline"`
}

// About fetches the about-page sub-entities.
type About struct {
	c *cms.Client
}

func NewAbout(c *cms.Client) *About {
	return &About{c: c}
}

// TeamMembers fetches the team in display order, with each member's photo
// reduced to a bare {url} object.
func (a *About) TeamMembers(ctx context.Context) ([]cms.Record, error) {
	q := cms.NewQuery().Sort("order:asc").Populate("*")
	records, err := a.c.GetList(ctx, "/team-members", q)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		flattenPhoto(r)
	}
	return records, nil
}

// Partners fetches the partner organisations.
func (a *About) Partners(ctx context.Context) ([]cms.Record, error) {
	return a.c.GetList(ctx, "/partners", cms.NewQuery().Populate("*"))
}

// Press fetches press coverage, newest first.
func (a *About) Press(ctx context.Context) ([]cms.Record, error) {
	q := cms.NewQuery().Sort("publishDate:desc").Populate("*")
	return a.c.GetList(ctx, "/press-articles", q)
}

// Timeline fetches the club history entries in display order.
func (a *About) Timeline(ctx context.Context) ([]cms.Record, error) {
	q := cms.NewQuery().Sort("order:asc").Populate("*")
	return a.c.GetList(ctx, "/timeline-events", q)
}

// All fetches the four sections concurrently and joins them. Any single
// failure fails the whole fetch; the page shows a retry control.
func (a *About) All(ctx context.Context) (AboutData, error) {
	var data AboutData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.Team, err = a.TeamMembers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Partners, err = a.Partners(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Press, err = a.Press(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Timeline, err = a.Timeline(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return AboutData{}, err
	}
	return data, nil
}

// flattenPhoto reduces a member's photo field to {url: ...}, falling back
// through the format renditions the media library keeps.
func flattenPhoto(r cms.Record) {
	var url string
	switch photo := r["photo"].(type) {
	case string:
		url = photo
	default:
		if p := r.Record("photo"); p != nil {
			url = p.String("url")
			if url == "" {
				if formats := p.Record("formats"); formats != nil {
					for _, size := range []string{"medium", "small", "thumbnail"} {
						if f := formats.Record(size); f != nil {
							if u := f.String("url"); u != "" {
								url = u
								break
							}
						}
					}
				}
			}
		}
	}
	if url == "" {
		r["photo"] = nil
		return
	}
	r["photo"] = cms.Record{"url": url}
}
