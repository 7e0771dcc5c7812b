package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Every data-layer outcome is a 2xx with a status flag, including
// failures. Clients key off the flag, only the auth middleware answers
// with 401/403.
func statusOK(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, echo.Map{"status": true, "message": message})
}

func statusFail(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, echo.Map{"status": false, "message": message})
}

func statusData(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"status": true, "data": data})
}
