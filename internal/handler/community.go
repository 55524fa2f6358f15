package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/pawnsgambit/club-api/internal/cms"
	"github.com/pawnsgambit/club-api/internal/content"
)

// CommunityHandler serves member profiles, achievements and club statistics.
type CommunityHandler struct {
	Community *content.Community
}

func NewCommunityHandler(cm *content.Community) *CommunityHandler {
	return &CommunityHandler{Community: cm}
}

// Members returns a page of member profiles.
func (h *CommunityHandler) Members(c echo.Context) error {
	items, err := h.Community.Members(c.Request().Context(), listOptions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Profile returns a single member profile.
func (h *CommunityHandler) Profile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rec, err := h.Community.Profile(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Search matches members by name or username, case-insensitively.
func (h *CommunityHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing query"})
	}
	items, err := h.Community.Search(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Top returns the highest rated members.
func (h *CommunityHandler) Top(c echo.Context) error {
	items, err := h.Community.TopMembers(c.Request().Context(), intQuery(c, "limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Achievements lists achievements. ?type= narrows to one achievement type.
func (h *CommunityHandler) Achievements(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		items []cms.Record
		err   error
	)
	if t := c.QueryParam("type"); t != "" {
		items, err = h.Community.AchievementsByType(ctx, t)
	} else {
		items, err = h.Community.Achievements(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Stats returns aggregate club statistics.
func (h *CommunityHandler) Stats(c echo.Context) error {
	stats, err := h.Community.CommunityStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Overview joins the top members and the club statistics in one response,
// fetching both concurrently.
func (h *CommunityHandler) Overview(c echo.Context) error {
	g, ctx := errgroup.WithContext(c.Request().Context())

	var (
		top   []cms.Record
		stats content.Stats
	)
	g.Go(func() error {
		var err error
		top, err = h.Community.TopMembers(ctx, intQuery(c, "limit", 0))
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = h.Community.CommunityStats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"topMembers": top, "stats": stats})
}
