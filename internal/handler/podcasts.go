package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawnsgambit/club-api/internal/content"
)

// PodcastsHandler serves the podcast episode endpoints.
type PodcastsHandler struct {
	Podcasts *content.Podcasts
}

func NewPodcastsHandler(p *content.Podcasts) *PodcastsHandler {
	return &PodcastsHandler{Podcasts: p}
}

// List returns a page of episodes. ?tag= narrows to one tag slug.
func (h *PodcastsHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if tag := c.QueryParam("tag"); tag != "" {
		items, err := h.Podcasts.ByTag(ctx, tag)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}

	items, err := h.Podcasts.List(ctx, listOptions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Featured returns the episode flagged as featured, or null.
func (h *PodcastsHandler) Featured(c echo.Context) error {
	rec, err := h.Podcasts.Featured(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Search matches episodes by title or description, case-insensitively.
func (h *PodcastsHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing query"})
	}
	items, err := h.Podcasts.Search(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ByID returns a single episode.
func (h *PodcastsHandler) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rec, err := h.Podcasts.ByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// IncrementListens bumps the listen counter for an episode.
func (h *PodcastsHandler) IncrementListens(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	rec, err := h.Podcasts.ByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.Podcasts.IncrementListens(ctx, id, int(rec.Int("listens")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
