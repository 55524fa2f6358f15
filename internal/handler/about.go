package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawnsgambit/club-api/internal/content"
)

// AboutHandler serves the about-page content: team, partners, press and the
// club timeline.
type AboutHandler struct {
	About *content.About
}

func NewAboutHandler(a *content.About) *AboutHandler {
	return &AboutHandler{About: a}
}

// All returns every about-page section in one response.
func (h *AboutHandler) All(c echo.Context) error {
	data, err := h.About.All(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

func (h *AboutHandler) Team(c echo.Context) error {
	items, err := h.About.TeamMembers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *AboutHandler) Partners(c echo.Context) error {
	items, err := h.About.Partners(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *AboutHandler) Press(c echo.Context) error {
	items, err := h.About.Press(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *AboutHandler) Timeline(c echo.Context) error {
	items, err := h.About.Timeline(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
