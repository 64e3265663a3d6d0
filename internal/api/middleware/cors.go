package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	corsAllowMethods = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	corsAllowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, " +
		"Content-MD5, Content-Type, Date, X-Api-Version, Idempotency-Key"
)

// CORS sets permissive cross-origin headers on every response and answers
// OPTIONS on any path with 200 and no body. echo's CORS middleware replies to
// preflights with 204, which browser clients of this API do not expect.
// Register it with e.Pre so it also covers unrouted paths.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowCredentials, "true")
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			h.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
