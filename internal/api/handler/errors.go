package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// errInvalidPayload is returned when the request body cannot be decoded.
var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
