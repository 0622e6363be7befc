package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SVG writes a vector document response. The short max-age keeps
// README proxies from pinning a stale badge.
func SVG(c echo.Context, doc string) error {
	c.Response().Header().Set("Cache-Control", "no-cache, max-age=300")
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(doc))
}

// OK wraps a successful JSON response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// BadRequestMessage writes a plain-text client error. The only client
// error the badge endpoint produces is a missing invite code.
func BadRequestMessage(c echo.Context, msg string) error {
	slog.Warn("bad request", "reason", msg)
	return c.String(http.StatusBadRequest, msg)
}
