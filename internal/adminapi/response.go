package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Every handler answers in a uniform envelope: {success:true, ...payload}
// on success, {success:false, message} or {success:false, errors} on failure.

func ok(c echo.Context, payload echo.Map) error {
	return envelope(c, http.StatusOK, payload)
}

func created(c echo.Context, payload echo.Map) error {
	return envelope(c, http.StatusCreated, payload)
}

func envelope(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": message,
	})
}

func failValidation(c echo.Context, errs []string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"errors":  errs,
	})
}
