package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "guard-test-secret"

func guardRouter(t *testing.T, ready <-chan struct{}) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := GuardConfig{
		Ready:        ready,
		ReadyTimeout: 50 * time.Millisecond,
		JWTSecret:    testSecret,
		DriverSuffix: "@driver.fooddelivery.com",
	}

	r := gin.New()
	r.GET("/", RootRedirect(cfg))
	r.GET("/restaurants",
		Guard(cfg, RouteMeta{RequiresAuth: true}),
		func(c *gin.Context) { c.JSON(200, gin.H{"page": "restaurants"}) })
	r.GET("/restaurants/:id",
		Guard(cfg, RouteMeta{AllowAnonymous: true}),
		func(c *gin.Context) { c.JSON(200, gin.H{"page": "detail"}) })
	r.GET("/partner/deliveries",
		Guard(cfg, RouteMeta{RequiresAuth: true, RequiresDriver: true}),
		func(c *gin.Context) { c.JSON(200, gin.H{"page": "deliveries"}) })
	return r
}

func tokenFor(t *testing.T, userID uint, email string) string {
	t.Helper()
	role := "customer"
	token, err := utils.GenerateToken(userID, role, email, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	r := guardRouter(t, closedChan())

	w := get(r, "/restaurants", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestGuardPassesAuthenticatedUser(t *testing.T) {
	r := guardRouter(t, closedChan())

	w := get(r, "/restaurants", tokenFor(t, 1, "eve@example.com"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardIgnoresInvalidToken(t *testing.T) {
	r := guardRouter(t, closedChan())

	w := get(r, "/restaurants", "not-a-token")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestGuardAllowsAnonymousRoute(t *testing.T) {
	r := guardRouter(t, closedChan())

	w := get(r, "/restaurants/7", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDriverRouteRedirectsNonDriver(t *testing.T) {
	r := guardRouter(t, closedChan())

	w := get(r, "/partner/deliveries", tokenFor(t, 1, "eve@example.com"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, HomePath, w.Header().Get("Location"))
}

func TestDriverRoutePassesDriverSuffix(t *testing.T) {
	r := guardRouter(t, closedChan())

	w := get(r, "/partner/deliveries", tokenFor(t, 2, "sam@driver.fooddelivery.com"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRootAlwaysRedirects(t *testing.T) {
	r := guardRouter(t, closedChan())

	w := get(r, "/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))

	w = get(r, "/", tokenFor(t, 1, "eve@example.com"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, HomePath, w.Header().Get("Location"))
}

func TestGuardSuspendsUntilReady(t *testing.T) {
	ready := make(chan struct{})
	r := guardRouter(t, ready)

	// bootstrap never settles: navigation times out with 503
	w := get(r, "/restaurants", tokenFor(t, 1, "eve@example.com"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	close(ready)
	w = get(r, "/restaurants", tokenFor(t, 1, "eve@example.com"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardAcceptsSessionCookie(t *testing.T) {
	r := guardRouter(t, closedChan())

	req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: tokenFor(t, 1, "eve@example.com")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
