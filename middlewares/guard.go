package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"github.com/gin-gonic/gin"
)

const (
	LoginPath = "/login"
	HomePath  = "/restaurants"
)

// RouteMeta is the navigation metadata a page route declares.
type RouteMeta struct {
	RequiresAuth   bool
	RequiresDriver bool
	AllowAnonymous bool
}

// GuardConfig is shared by every guarded route.
type GuardConfig struct {
	// Ready is closed once bootstrap (migrate + seed) has finished.
	// Until then guarded navigation is suspended.
	Ready <-chan struct{}
	// ReadyTimeout bounds the suspension; a stalled bootstrap answers
	// 503 instead of blocking navigation forever.
	ReadyTimeout time.Duration

	JWTSecret    string
	DriverSuffix string
}

// Guard is the navigation guard for page routes: it waits for the app
// to settle, resolves the caller from the bearer token (or session
// cookie) and then applies the route metadata. Denials are redirects,
// matching how the views navigate, not JSON errors.
func Guard(cfg GuardConfig, meta RouteMeta) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !waitReady(cfg, c) {
			return
		}

		claims := resolveUser(c, cfg.JWTSecret)

		if meta.RequiresAuth && claims == nil && !meta.AllowAnonymous {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if meta.RequiresDriver {
			if claims == nil {
				c.Redirect(http.StatusFound, LoginPath)
				c.Abort()
				return
			}
			if !strings.HasSuffix(claims.Email, cfg.DriverSuffix) {
				c.Redirect(http.StatusFound, HomePath)
				c.Abort()
				return
			}
		}

		if claims != nil {
			c.Set("userId", claims.UserID)
			c.Set("role", claims.Role)
			c.Set("email", claims.Email)
		}
		c.Next()
	}
}

// RootRedirect implements the landing policy: the root path always
// redirects — to the restaurant list for a signed-in caller, to the
// login page otherwise.
func RootRedirect(cfg GuardConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !waitReady(cfg, c) {
			return
		}
		if resolveUser(c, cfg.JWTSecret) != nil {
			c.Redirect(http.StatusFound, HomePath)
			return
		}
		c.Redirect(http.StatusFound, LoginPath)
	}
}

func waitReady(cfg GuardConfig, c *gin.Context) bool {
	if cfg.Ready == nil {
		return true
	}
	select {
	case <-cfg.Ready:
		return true
	case <-time.After(cfg.ReadyTimeout):
		c.String(http.StatusServiceUnavailable, "service is starting")
		c.Abort()
		return false
	}
}

// resolveUser accepts either a bearer header or the session cookie the
// views set after login. An invalid token just means anonymous.
func resolveUser(c *gin.Context, secret string) *utils.Claims {
	tokenStr := ""
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		tokenStr = strings.TrimPrefix(h, "Bearer ")
	} else if v, err := c.Cookie("session"); err == nil {
		tokenStr = v
	}
	if tokenStr == "" {
		return nil
	}
	claims, err := utils.ParseToken(tokenStr, secret)
	if err != nil {
		return nil
	}
	return claims
}
