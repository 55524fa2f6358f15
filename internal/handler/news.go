package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawnsgambit/club-api/internal/content"
)

// NewsHandler serves the news article endpoints.
type NewsHandler struct {
	News *content.News
}

func NewNewsHandler(n *content.News) *NewsHandler {
	return &NewsHandler{News: n}
}

// List returns a page of articles. ?category= narrows to one category.
func (h *NewsHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if cat := c.QueryParam("category"); cat != "" {
		items, err := h.News.ByCategory(ctx, cat)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}

	items, err := h.News.List(ctx, listOptions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Featured returns articles flagged for the homepage.
func (h *NewsHandler) Featured(c echo.Context) error {
	items, err := h.News.Featured(c.Request().Context(), intQuery(c, "limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Recent returns the latest articles.
func (h *NewsHandler) Recent(c echo.Context) error {
	items, err := h.News.Recent(c.Request().Context(), intQuery(c, "limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ByID returns a single article.
func (h *NewsHandler) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rec, err := h.News.ByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}
