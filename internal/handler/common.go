// Package handler exposes the HTTP handlers for the public site API. Content
// handlers are thin adapters: they parse query parameters, call the content
// clients and forward errors from the upstream CMS with their original
// status. Transport failures surface as 502 so callers can tell the CMS
// being down apart from a bad request.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pawnsgambit/club-api/internal/cms"
	"github.com/pawnsgambit/club-api/internal/content"
)

// respondError maps a content-client error onto an HTTP response. CMS errors
// keep their upstream status and message; anything else is a 502.
func respondError(c echo.Context, err error) error {
	var apiErr *cms.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "upstream error"
		}
		return c.JSON(apiErr.Status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "content service unavailable"})
}

// listOptions reads the shared pagination and sorting parameters.
func listOptions(c echo.Context) content.ListOptions {
	return content.ListOptions{
		Page:     intQuery(c, "page", 0),
		PageSize: intQuery(c, "pageSize", 0),
		Sort:     c.QueryParam("sort"),
	}
}

func intQuery(c echo.Context, name string, fallback int) int {
	v := c.QueryParam(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
