package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", Middleware(testSecret), func(c *fiber.Ctx) error {
		uid, err := UserID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return c.JSON(fiber.Map{"user_id": uid})
	})
	return app
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	app := testApp()
	userID := "11111111-1111-1111-1111-111111111111"

	token, err := GenerateToken(testSecret, userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	app := testApp()

	token, err := GenerateToken([]byte("other-secret"), "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	app := testApp()

	claims := jwt.MapClaims{
		"user_id": "11111111-1111-1111-1111-111111111111",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMiddlewareRejectsNonUUIDClaim(t *testing.T) {
	app := testApp()

	token, err := GenerateToken(testSecret, "not-a-uuid")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
