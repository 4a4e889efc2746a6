// Package handlers implements the HTTP endpoints of the analytics API.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
)

const (
	defaultTopN = 10
	maxTopN     = 100
)

// Handler serves analytics queries over the configured result sheet.
// Expensive aggregates are memoized in the query cache keyed by the
// dataset fingerprint, so a reload of the source file naturally starts
// a fresh memo generation.
type Handler struct {
	loader   *dataset.Loader
	dataFile string
	queries  *gocache.Cache
	log      *zap.Logger
}

// New builds the handler set.
func New(loader *dataset.Loader, dataFile string, queries *gocache.Cache, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		loader:   loader,
		dataFile: dataFile,
		queries:  queries,
		log:      log,
	}
}

// Health responds with a simple service heartbeat.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "result analytics API is running",
	})
}

// Reload invalidates the cached dataset so the next query re-reads the
// source file.
func (h *Handler) Reload(c *gin.Context) {
	h.loader.Invalidate(h.dataFile)
	h.queries.Flush()
	h.log.Info("dataset cache invalidated", zap.String("path", h.dataFile))
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}

// data loads the dataset, responding with a 500 and returning false on
// failure. A schema problem in the source file is reported with the
// missing columns.
func (h *Handler) data(c *gin.Context) (*dataset.Dataset, bool) {
	ds, err := h.loader.Load(h.dataFile)
	if err != nil {
		h.log.Error("dataset load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return ds, true
}

// memoized returns the cached value for key, or computes, stores and
// returns it. The key must include the dataset fingerprint.
func (h *Handler) memoized(key string, compute func() (any, error)) (any, error) {
	if h.queries != nil {
		if v, found := h.queries.Get(key); found {
			return v, nil
		}
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	if h.queries != nil {
		h.queries.Set(key, v, gocache.DefaultExpiration)
	}
	return v, nil
}

func parseTopN(c *gin.Context) (int, error) {
	value := strings.TrimSpace(c.Query("n"))
	if value == "" {
		return defaultTopN, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("n parameter must be a positive integer")
	}
	if n > maxTopN {
		n = maxTopN
	}
	return n, nil
}
