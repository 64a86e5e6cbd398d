package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/procurehub/backend/internal/domain/identity"
	"github.com/procurehub/backend/internal/infrastructure/auth"
	"github.com/procurehub/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-for-middleware-tests",
		TokenExpiration: expiration,
		Issuer:          "procurehub-test",
	})
}

func jwtRouter(svc *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuth(svc, zap.NewNop()))
	for _, h := range extra {
		router.Use(h)
	}
	router.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, GetJWTUserID(c).String())
	})
	return router
}

func TestJWTAuth(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	t.Run("valid token populates the context", func(t *testing.T) {
		userID := uuid.New()
		token, _, err := svc.GenerateToken(userID, "user@example.com", string(identity.RoleCustomer))
		require.NoError(t, err)

		router := jwtRouter(svc)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router := jwtRouter(svc)
		req := httptest.NewRequest("GET", "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("non-bearer header is rejected", func(t *testing.T) {
		router := jwtRouter(svc)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		router := jwtRouter(svc)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.jwt")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("expired token reports expiry", func(t *testing.T) {
		expired := newTestJWTService(-time.Minute)
		token, _, err := expired.GenerateToken(uuid.New(), "user@example.com", string(identity.RoleCustomer))
		require.NoError(t, err)

		router := jwtRouter(svc)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := auth.NewJWTService(config.JWTConfig{
			Secret:          "a-different-secret",
			TokenExpiration: time.Hour,
			Issuer:          "procurehub-test",
		})
		token, _, err := other.GenerateToken(uuid.New(), "user@example.com", string(identity.RoleCustomer))
		require.NoError(t, err)

		router := jwtRouter(svc)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	issue := func(t *testing.T, role identity.Role) string {
		token, _, err := svc.GenerateToken(uuid.New(), "user@example.com", string(role))
		require.NoError(t, err)
		return token
	}

	t.Run("matching role passes", func(t *testing.T) {
		router := jwtRouter(svc, RequireRole(identity.RoleSupplier))
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issue(t, identity.RoleSupplier))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		router := jwtRouter(svc, RequireRole(identity.RoleSupplier))
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+issue(t, identity.RoleCustomer))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})
}
