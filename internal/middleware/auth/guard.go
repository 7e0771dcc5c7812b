package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/models"
	"github.com/Skotchmaster/resale_market/internal/service/token"
)

// ContextEmailKey is the only channel through which the authenticated
// identity reaches handlers.
const ContextEmailKey = "userEmail"

type Guard struct {
	DB     *gorm.DB
	Tokens *token.Service
}

// RequireAuth rejects a missing credential with 401 and a bad one with 403.
// Clients depend on that split, do not collapse it.
func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		parts := strings.SplitN(header, " ", 2)
		raw := parts[len(parts)-1]
		email, err := g.Tokens.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
		}

		c.Set(ContextEmailKey, email)
		return next(c)
	}
}

// RequireRole admits only the one role a route declares. There is no
// hierarchy: admin does not pass a buyer check. Must run after RequireAuth.
func (g *Guard) RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(ContextEmailKey).(string)

			var user models.User
			err := g.DB.WithContext(c.Request().Context()).
				Where("email = ?", email).First(&user).Error
			if err != nil || user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}
			return next(c)
		}
	}
}

func Email(c echo.Context) string {
	email, _ := c.Get(ContextEmailKey).(string)
	return email
}
