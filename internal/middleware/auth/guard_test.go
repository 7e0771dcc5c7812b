package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/models"
	"github.com/Skotchmaster/resale_market/internal/service/token"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newGuard(t *testing.T) *Guard {
	return &Guard{
		DB:     initTestDB(t),
		Tokens: &token.Service{Secret: []byte("test_secret")},
	}
}

func doRequest(g *Guard, role models.Role, authHeader string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	handler := g.RequireAuth(g.RequireRole(role)(next))
	return rec, handler(c)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	g := newGuard(t)

	_, err := doRequest(g, models.RoleAdmin, "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	g := newGuard(t)

	_, err := doRequest(g, models.RoleAdmin, "Bearer garbage")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRoleMatrix(t *testing.T) {
	g := newGuard(t)

	users := []models.User{
		{Email: "admin@example.com", Role: models.RoleAdmin},
		{Email: "buyer@example.com", Role: models.RoleBuyer},
		{Email: "seller@example.com", Role: models.RoleSeller},
	}
	for i := range users {
		require.NoError(t, g.DB.Create(&users[i]).Error)
	}

	required := []models.Role{models.RoleAdmin, models.RoleBuyer, models.RoleSeller}
	for _, u := range users {
		signed, err := g.Tokens.Issue(u.Email)
		require.NoError(t, err)

		for _, role := range required {
			rec, err := doRequest(g, role, "Bearer "+signed)
			if u.Role == role {
				require.NoError(t, err, "role %s should pass its own check", u.Role)
				require.Equal(t, http.StatusOK, rec.Code)
			} else {
				he, ok := err.(*echo.HTTPError)
				require.True(t, ok, "role %s must not pass %s check", u.Role, role)
				require.Equal(t, http.StatusForbidden, he.Code)
			}
		}
	}
}

func TestRequireRoleUnknownUser(t *testing.T) {
	g := newGuard(t)

	signed, err := g.Tokens.Issue("ghost@example.com")
	require.NoError(t, err)

	_, err = doRequest(g, models.RoleBuyer, "Bearer "+signed)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)
}
