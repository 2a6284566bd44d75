package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"storefront/internal/tokens"
)

func callWithHeader(t *testing.T, mw *AdminMiddleware, authHeader string) (error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	return mw.RequireAdmin(next)(c), called
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	secret := []byte("test-jwt-secret")
	mw := NewAdminMiddleware(secret)

	token, _, err := tokens.NewAccessToken(1, "admin", secret)
	require.NoError(t, err)

	err, called := callWithHeader(t, mw, "Bearer "+token)
	require.NoError(t, err)
	require.True(t, called)
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	mw := NewAdminMiddleware([]byte("test-jwt-secret"))

	err, called := callWithHeader(t, mw, "")
	require.False(t, called)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin_GarbageToken(t *testing.T) {
	mw := NewAdminMiddleware([]byte("test-jwt-secret"))

	err, called := callWithHeader(t, mw, "Bearer not-a-jwt")
	require.False(t, called)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	secret := []byte("test-jwt-secret")
	mw := NewAdminMiddleware(secret)

	claims := tokens.AdminClaims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	mwErr, called := callWithHeader(t, mw, "Bearer "+expired)
	require.False(t, called)

	he, ok := mwErr.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
