// Package content exposes one client per content type of the club site:
// events, podcast episodes, community members, news articles, about-page
// sections and volunteer applications. Clients build the API's query
// conventions and hand every response through the cms normalizer.
package content

import (
	"context"
	"fmt"
	"time"

	"github.com/pawnsgambit/club-api/internal/cms"
)

// ListOptions parameterize collection fetches.
type ListOptions struct {
	Page     int
	PageSize int
	Sort     string
	// Filters maps field name to an equality-filter value.
	Filters map[string]string
}

func (o ListOptions) query(defaultSize int, defaultSort string) *cms.Query {
	page := o.Page
	if page < 1 {
		page = 1
	}
	size := o.PageSize
	if size < 1 {
		size = defaultSize
	}
	sort := o.Sort
	if sort == "" {
		sort = defaultSort
	}
	q := cms.NewQuery().Page(page).PageSize(size).Sort(sort).Populate("*")
	for field, value := range o.Filters {
		q.Eq(field, value)
	}
	return q
}

// Event is the record shape the site renders. Field names follow what the
// event cards expect, not what the content API stores.
type Event struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	Type             string  `json:"type"`
	Participants     int     `json:"participants"`
	MaxParticipants  int     `json:"maxParticipants"`
	Image            string  `json:"image,omitempty"`
	ImageAlt         string  `json:"imageAlt"`
	Prizes           string  `json:"prizes,omitempty"`
	SkillLevel       string  `json:"skillLevel"`
	EntryFee         float64 `json:"entryFee"`
	Location         string  `json:"location"`
	Address          string  `json:"address"`
	Featured         bool    `json:"featured"`
	RegistrationLink string  `json:"registrationLink,omitempty"`
	Organizer        string  `json:"organizer,omitempty"`
	StartDate        string  `json:"startDate,omitempty"`
	EndDate          string  `json:"endDate,omitempty"`
}

// Events fetches and transforms event records.
type Events struct {
	c *cms.Client
}

func NewEvents(c *cms.Client) *Events {
	return &Events{c: c}
}

// List fetches a page of events, newest first by default.
func (e *Events) List(ctx context.Context, opts ListOptions) ([]Event, error) {
	records, err := e.c.GetList(ctx, "/events", opts.query(12, "startDate:desc"))
	if err != nil {
		return nil, err
	}
	return eventsFromRecords(records), nil
}

// Upcoming fetches events starting from now, soonest first.
func (e *Events) Upcoming(ctx context.Context, limit int) ([]Event, error) {
	if limit < 1 {
		limit = 6
	}
	now := time.Now().UTC().Format(time.RFC3339)
	q := cms.NewQuery().Gte("startDate", now).Sort("startDate:asc").Limit(limit).Populate("*")
	records, err := e.c.GetList(ctx, "/events", q)
	if err != nil {
		return nil, err
	}
	return eventsFromRecords(records), nil
}

// Featured fetches events flagged for the homepage.
func (e *Events) Featured(ctx context.Context) ([]Event, error) {
	q := cms.NewQuery().Eq("featured", "true").Populate("*")
	records, err := e.c.GetList(ctx, "/events", q)
	if err != nil {
		return nil, err
	}
	return eventsFromRecords(records), nil
}

// Past fetches finished events, most recent first.
func (e *Events) Past(ctx context.Context, limit int) ([]Event, error) {
	if limit < 1 {
		limit = 6
	}
	now := time.Now().UTC().Format(time.RFC3339)
	q := cms.NewQuery().Lte("endDate", now).Sort("endDate:desc").Limit(limit).Populate("*")
	records, err := e.c.GetList(ctx, "/events", q)
	if err != nil {
		return nil, err
	}
	return eventsFromRecords(records), nil
}

// ByType fetches events of one type (tournament, workshop, meetup, online).
func (e *Events) ByType(ctx context.Context, eventType string) ([]Event, error) {
	q := cms.NewQuery().Eq("eventType", eventType).Populate("*")
	records, err := e.c.GetList(ctx, "/events", q)
	if err != nil {
		return nil, err
	}
	return eventsFromRecords(records), nil
}

// ByID fetches a single event.
func (e *Events) ByID(ctx context.Context, id int64) (Event, error) {
	rec, err := e.c.GetOne(ctx, fmt.Sprintf("/events/%d", id), cms.NewQuery().Populate("*"))
	if err != nil {
		return Event{}, err
	}
	return EventFromRecord(rec), nil
}

// Register bumps the participant count by one via a partial update.
func (e *Events) Register(ctx context.Context, id int64, currentParticipants int) (Event, error) {
	if currentParticipants < 0 {
		currentParticipants = 0
	}
	rec, err := e.c.PutData(ctx, fmt.Sprintf("/events/%d", id), map[string]any{
		"currentParticipants": currentParticipants + 1,
	})
	if err != nil {
		return Event{}, err
	}
	return EventFromRecord(rec), nil
}

// EventFromRecord maps a normalized record onto the shape the site expects:
// eventType becomes type, currentParticipants becomes participants,
// coverImage becomes image, prizePool becomes prizes, and missing optional
// fields get their defaults.
func EventFromRecord(r cms.Record) Event {
	if r == nil {
		return Event{}
	}

	start := r.String("startDate")
	if start == "" {
		start = r.String("date")
	}
	date := start
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	clock := "00:00"
	if t, err := time.Parse(time.RFC3339, start); err == nil {
		clock = t.Format("15:04")
	}

	ev := Event{
		ID:               r.ID(),
		Title:            stringOr(r, "title", "Untitled Event"),
		Description:      r.String("description"),
		Date:             date,
		Time:             clock,
		Type:             stringOr(r, "eventType", stringOr(r, "type", "tournament")),
		Participants:     int(r.Int("currentParticipants")),
		MaxParticipants:  int(r.Int("maxParticipants")),
		Image:            eventImage(r),
		Prizes:           stringOr(r, "prizePool", r.String("prizes")),
		SkillLevel:       stringOr(r, "skillLevel", "all levels"),
		EntryFee:         r.Float("entryFee"),
		Location:         stringOr(r, "location", "TBD"),
		Address:          r.String("address"),
		Featured:         r.Bool("featured"),
		RegistrationLink: r.String("registrationLink"),
		Organizer:        r.String("organizer"),
		StartDate:        r.String("startDate"),
		EndDate:          r.String("endDate"),
	}
	if ev.MaxParticipants == 0 {
		ev.MaxParticipants = 100
	}
	ev.ImageAlt = eventImageAlt(r, ev.Title)
	return ev
}

func eventsFromRecords(records []cms.Record) []Event {
	out := make([]Event, 0, len(records))
	for _, r := range records {
		out = append(out, EventFromRecord(r))
	}
	return out
}

// eventImage picks the cover image URL, falling back through the format
// renditions and then a plain image field.
func eventImage(r cms.Record) string {
	switch cover := r["coverImage"].(type) {
	case string:
		return cover
	default:
		if img := r.Record("coverImage"); img != nil {
			if u := img.String("url"); u != "" {
				return u
			}
			if formats := img.Record("formats"); formats != nil {
				for _, size := range []string{"large", "medium", "small"} {
					if f := formats.Record(size); f != nil {
						if u := f.String("url"); u != "" {
							return u
						}
					}
				}
			}
		}
	}
	return r.String("image")
}

func eventImageAlt(r cms.Record, title string) string {
	if img := r.Record("coverImage"); img != nil {
		if alt := img.String("alternativeText"); alt != "" {
			return alt
		}
		if cap := img.String("caption"); cap != "" {
			return cap
		}
	}
	if title != "" {
		return title
	}
	return "Event image"
}

func stringOr(r cms.Record, key, fallback string) string {
	if v := r.String(key); v != "" {
		return v
	}
	return fallback
}
