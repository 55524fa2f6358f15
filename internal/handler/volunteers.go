package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawnsgambit/club-api/internal/content"
)

// VolunteersHandler accepts volunteer applications.
type VolunteersHandler struct {
	Volunteers *content.Volunteers
}

func NewVolunteersHandler(v *content.Volunteers) *VolunteersHandler {
	return &VolunteersHandler{Volunteers: v}
}

// Submit forwards a volunteer application to the CMS.
func (h *VolunteersHandler) Submit(c echo.Context) error {
	var app content.Application
	if err := c.Bind(&app); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	rec, err := h.Volunteers.Submit(c.Request().Context(), app)
	if err != nil {
		if errors.Is(err, content.ErrIncompleteApplication) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}
