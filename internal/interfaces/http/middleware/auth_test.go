package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"minevest.backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(jwtService *jwt.JWTService, audience string, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(jwtService, audience)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID.String()})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(AuthorizationHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	w := doRequest(newAuthRouter(svc, jwt.AudienceUser), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	w := doRequest(newAuthRouter(svc, jwt.AudienceUser), "Token abc")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(userID, "user@minevest.io", "USER", jwt.AudienceUser)
	require.NoError(t, err)

	w := doRequest(newAuthRouter(svc, jwt.AudienceUser), BearerPrefix+pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	svc := jwt.NewJWTService("secret", -time.Minute, -time.Minute)
	pair, err := svc.GenerateTokenPair(uuid.New(), "user@minevest.io", "USER", jwt.AudienceUser)
	require.NoError(t, err)

	w := doRequest(newAuthRouter(svc, jwt.AudienceUser), BearerPrefix+pair.AccessToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_WrongAudience(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	pair, err := svc.GenerateTokenPair(uuid.New(), "user@minevest.io", "USER", jwt.AudienceUser)
	require.NoError(t, err)

	// A user-scoped token on the admin surface is forbidden, not unauthorized.
	w := doRequest(newAuthRouter(svc, jwt.AudienceAdmin), BearerPrefix+pair.AccessToken)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)

	adminPair, err := svc.GenerateTokenPair(uuid.New(), "admin@minevest.io", "ADMIN", jwt.AudienceAdmin)
	require.NoError(t, err)
	userPair, err := svc.GenerateTokenPair(uuid.New(), "user@minevest.io", "USER", jwt.AudienceAdmin)
	require.NoError(t, err)

	r := newAuthRouter(svc, jwt.AudienceAdmin, RequireAdmin())

	w := doRequest(r, BearerPrefix+adminPair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, BearerPrefix+userPair.AccessToken)
	require.Equal(t, http.StatusForbidden, w.Code)
}
