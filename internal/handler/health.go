package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness. It deliberately does not probe the CMS; content
// routes degrade with a 502 on their own when the CMS is unreachable.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
