package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-signing-key")

func newServer() *echo.Echo {
	e := echo.New()
	g := e.Group("/rp", JWT(testKey))
	g.GET("/me", func(c echo.Context) error {
		id, _ := UserID(c)
		return c.JSON(http.StatusOK, map[string]interface{}{"id": id, "username": Username(c)})
	})
	g.POST("/admin", func(c echo.Context) error { return c.NoContent(http.StatusAccepted) }, RequireAdmin())
	return e
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAcceptsValidToken(t *testing.T) {
	token, err := NewToken(testKey, 42, "padraic", false, time.Hour)
	require.NoError(t, err)

	e := newServer()
	for _, header := range []string{token, "Bearer " + token} {
		rec := do(e, http.MethodGet, "/rp/me", header)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":42,"username":"padraic"}`, rec.Body.String())
	}
}

func TestJWTRejects(t *testing.T) {
	wrongKey, err := NewToken([]byte("other"), 1, "x", false, time.Hour)
	require.NoError(t, err)
	expired, err := NewToken(testKey, 1, "x", false, -time.Minute)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Username: "x"}).SignedString(testKey)
	require.NoError(t, err)

	e := newServer()
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/rp/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/rp/me", wrongKey).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/rp/me", expired).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/rp/me", noSubject).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/rp/me", "not-a-jwt").Code)
}

func TestRequireAdmin(t *testing.T) {
	user, err := NewToken(testKey, 1, "user", false, time.Hour)
	require.NoError(t, err)
	admin, err := NewToken(testKey, 2, "boss", true, time.Hour)
	require.NoError(t, err)

	e := newServer()
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodPost, "/rp/admin", user).Code)
	assert.Equal(t, http.StatusAccepted, do(e, http.MethodPost, "/rp/admin", admin).Code)
}
