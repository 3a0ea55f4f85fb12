package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/apperror"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func whoami(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"userId": c.Locals("userId"), "role": c.Locals("role")})
}

func TestJWTMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/me", JWTMiddleware(secret), whoami)

	get := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	token, err := GenerateJWT(secret, time.Hour, models.User{ID: 7, Role: models.RoleStudent, Email: "s@school.test"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get("Bearer "+token))

	expired, err := GenerateJWT(secret, -time.Hour, models.User{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get("Bearer "+expired))

	foreign, err := GenerateJWT("another-secret", time.Hour, models.User{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get("Bearer "+foreign))

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get("Bearer "+noUser))

	assert.Equal(t, http.StatusUnauthorized, get(""))
	assert.Equal(t, http.StatusUnauthorized, get("Token "+token))
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{apperror.Validation("bad"), http.StatusBadRequest},
		{apperror.ValidationFields("bad", map[string]string{"f": "x"}), http.StatusBadRequest},
		{apperror.NotFound("missing"), http.StatusNotFound},
		{apperror.Unauthorized("who"), http.StatusUnauthorized},
		{apperror.Forbidden("no"), http.StatusForbidden},
		{apperror.Internal(assert.AnError, "boom"), http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return ErrorResponse(c, err) })

		resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, reqErr)
		assert.Equal(t, tc.code, resp.StatusCode, err.Error())
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(c.Locals("requestId").(string)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(RequestIDHeader))
}
