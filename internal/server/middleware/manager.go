// Package middleware wires the HTTP middlewares with shared
// dependencies.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kumardhruv88/result-analytics/internal/server/ratelimit"
)

// Manager holds the accepted API keys and the rate limiter shared by
// all routes.
type Manager struct {
	keys        map[string]struct{}
	adminKey    string
	rateLimiter *ratelimit.Limiter
	log         *zap.Logger
}

// NewManager builds a middleware manager. The admin key is always
// accepted by Auth in addition to the configured keys.
func NewManager(keys []string, adminKey string, limiter *ratelimit.Limiter, log *zap.Logger) *Manager {
	keySet := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		keySet[key] = struct{}{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		keys:        keySet,
		adminKey:    adminKey,
		rateLimiter: limiter,
		log:         log,
	}
}

// Auth validates the X-API-Key header against the configured keys.
func (m *Manager) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if _, ok := m.keys[key]; !ok && key != m.adminKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set("api_key", key)
		c.Next()
	}
}

// RateLimit enforces per-key request limits.
func (m *Manager) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		key, exists := c.Get("api_key")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please provide an API key"})
			return
		}

		if !m.rateLimiter.Allow(key.(string)) {
			m.log.Warn("rate limit exceeded", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}

// Admin restricts routes to the admin key.
func (m *Manager) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if key != m.adminKey {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}
