package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndVerify(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Issue(&models.User{ID: 42, Email: "ana@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTManager_RejectsBadTokens(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	ctx := context.Background()

	other, err := NewJWTManager("other-secret", time.Hour).Issue(&models.User{ID: 1})
	require.NoError(t, err)
	expired, err := NewJWTManager("test-secret", -time.Minute).Issue(&models.User{ID: 1})
	require.NoError(t, err)
	noSubject, err := m.Issue(&models.User{})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &models.JwtCustomClaims{UserID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": other,
		"expired":      expired,
		"no user id":   noSubject,
		"alg none":     unsigned,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

type stubVerifier struct {
	token  string
	userID uint
}

func (s stubVerifier) Verify(_ context.Context, token string) (uint, error) {
	if token != s.token {
		return 0, ErrInvalidToken
	}
	return s.userID, nil
}

func runAuth(t *testing.T, setHeaders func(h http.Header), verifiers ...TokenVerifier) (uint, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setHeaders(req.Header)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen uint
	handler := Auth(verifiers...)(func(c echo.Context) error {
		id, ok := UserIDFromContext(c)
		require.True(t, ok)
		seen = id
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return seen, err
}

func assertUnauthorized(t *testing.T, err error, msg string) {
	t.Helper()
	var herr *echo.HTTPError
	require.True(t, errors.As(err, &herr), "expected *echo.HTTPError, got %v", err)
	assert.Equal(t, http.StatusUnauthorized, herr.Code)
	assert.Equal(t, msg, herr.Message)
}

func TestAuth_MissingToken(t *testing.T) {
	_, err := runAuth(t, func(http.Header) {}, stubVerifier{token: "good", userID: 1})
	assertUnauthorized(t, err, "No token, authorization denied")
}

func TestAuth_MalformedAuthorizationHeader(t *testing.T) {
	_, err := runAuth(t, func(h http.Header) {
		h.Set("Authorization", "Token good")
	}, stubVerifier{token: "good", userID: 1})
	assertUnauthorized(t, err, "No token, authorization denied")
}

func TestAuth_InvalidToken(t *testing.T) {
	_, err := runAuth(t, func(h http.Header) {
		h.Set("Authorization", "Bearer bad")
	}, stubVerifier{token: "good", userID: 1})
	assertUnauthorized(t, err, "Token is not valid")
}

func TestAuth_BearerHeader(t *testing.T) {
	id, err := runAuth(t, func(h http.Header) {
		h.Set("Authorization", "Bearer good")
	}, stubVerifier{token: "good", userID: 7})
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestAuth_LegacyHeader(t *testing.T) {
	id, err := runAuth(t, func(h http.Header) {
		h.Set("x-auth-token", "good")
	}, stubVerifier{token: "good", userID: 7})
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestAuth_FallsThroughVerifiers(t *testing.T) {
	id, err := runAuth(t, func(h http.Header) {
		h.Set("Authorization", "Bearer second")
	}, stubVerifier{token: "first", userID: 1}, stubVerifier{token: "second", userID: 2})
	require.NoError(t, err)
	assert.Equal(t, uint(2), id)
}

func TestAuth_WithJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	token, err := m.Issue(&models.User{ID: 9})
	require.NoError(t, err)

	id, err := runAuth(t, func(h http.Header) {
		h.Set("Authorization", "Bearer "+token)
	}, m)
	require.NoError(t, err)
	assert.Equal(t, uint(9), id)
}

func TestUserIDFromContext_Unset(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := UserIDFromContext(c)
	assert.False(t, ok)
}
