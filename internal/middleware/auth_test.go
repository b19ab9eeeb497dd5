package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportstravel/internal/authz"
	"sportstravel/internal/services"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, userID, roleID int, expiresAt time.Time) string {
	t.Helper()
	claims := &services.Claims{
		UserID: userID,
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func authTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(testSecret)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		userID := c.GetInt("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/protected", chain...)
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, testSecret, 7, authz.RoleAgent, time.Now().Add(time.Hour))

	w := doAuthRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := authTestRouter()

	w := doAuthRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := authTestRouter()

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "token-without-scheme"} {
		w := doAuthRequest(r, header)
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, testSecret, 7, authz.RoleAgent, time.Now().Add(-time.Hour))

	w := doAuthRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, []byte("other-secret"), 7, authz.RoleAgent, time.Now().Add(time.Hour))

	w := doAuthRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r := authTestRouter(RequireRoles(authz.RoleManager, authz.RoleAdmin))

	agent := signToken(t, testSecret, 7, authz.RoleAgent, time.Now().Add(time.Hour))
	w := doAuthRequest(r, "Bearer "+agent)
	assert.Equal(t, http.StatusForbidden, w.Code)

	manager := signToken(t, testSecret, 8, authz.RoleManager, time.Now().Add(time.Hour))
	w = doAuthRequest(r, "Bearer "+manager)
	assert.Equal(t, http.StatusOK, w.Code)
}
