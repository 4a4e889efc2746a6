// Package server assembles the analytics HTTP service.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/kumardhruv88/result-analytics/internal/config"
	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/server/handlers"
	"github.com/kumardhruv88/result-analytics/internal/server/middleware"
	"github.com/kumardhruv88/result-analytics/internal/server/ratelimit"
	"github.com/kumardhruv88/result-analytics/internal/server/router"
)

const (
	queryCacheTTL     = 5 * time.Minute
	queryCacheCleanup = 10 * time.Minute
	rateLimitCleanup  = 1 * time.Minute
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

// New assembles the HTTP server from configuration: dataset loader and
// cache, query memoization, auth and rate limiting, and the route table.
func New(cfg *config.Config, log *zap.Logger) *http.Server {
	dsCache := dataset.NewCache(cfg.CacheTTL)
	loader := dataset.NewLoader(dsCache, log)

	// Warm the cache so the first request doesn't pay the parse cost.
	// A missing or malformed file is not fatal here; every query
	// retries the load and reports the failure.
	if _, err := loader.Load(cfg.DataFile); err != nil {
		log.Warn("initial dataset load failed", zap.String("path", cfg.DataFile), zap.Error(err))
	}

	adminKey := cfg.AdminKey
	if adminKey == "" {
		adminKey = "admin-" + uuid.New().String()
		log.Info("admin key generated", zap.String("admin_key", adminKey))
	}

	limiter := ratelimit.NewLimiter(cfg.RateLimit, time.Duration(cfg.RateWindowSeconds)*time.Second)
	limiter.StartCleanup(rateLimitCleanup)

	queries := gocache.New(queryCacheTTL, queryCacheCleanup)

	handler := handlers.New(loader, cfg.DataFile, queries, log)
	mw := middleware.NewManager(cfg.APIKeys, adminKey, limiter, log)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(handler, mw),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
