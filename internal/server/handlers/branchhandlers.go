package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kumardhruv88/result-analytics/internal/analytics"
)

// GetBranchStats serves the per-branch aggregate table.
func (h *Handler) GetBranchStats(c *gin.Context) {
	ds, ok := h.data(c)
	if !ok {
		return
	}

	stats, err := h.memoized(ds.Fingerprint+":branches", func() (any, error) {
		return analytics.BranchAggregate(ds)
	})
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	branches := stats.([]analytics.BranchStats)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(branches),
		"branches": branches,
	})
}

// GetRanking serves the full cohort ranking, or per-branch/per-section
// groups when scope says so.
func (h *Handler) GetRanking(c *gin.Context) {
	scope := analytics.Scope(strings.ToLower(strings.TrimSpace(c.DefaultQuery("scope", string(analytics.ScopeAll)))))

	ds, ok := h.data(c)
	if !ok {
		return
	}

	groups, err := analytics.Ranking(ds, scope)
	if err != nil {
		if err == analytics.ErrNoData {
			respondAnalyticsError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scope":  scope,
		"groups": groups,
	})
}

// GetBranchRanking serves the ranking within one branch.
func (h *Handler) GetBranchRanking(c *gin.Context) {
	branch := strings.TrimSpace(c.Param("branch"))
	if branch == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch parameter is required"})
		return
	}

	ds, ok := h.data(c)
	if !ok {
		return
	}

	groups, err := analytics.Ranking(ds, analytics.ScopeBranch)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	for _, g := range groups {
		if g.Key == branch {
			c.JSON(http.StatusOK, gin.H{
				"branch":   branch,
				"count":    len(g.Students),
				"students": g.Students,
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "unknown branch"})
}

// GetToppers serves the top-N performers overall or within a branch.
func (h *Handler) GetToppers(c *gin.Context) {
	n, err := parseTopN(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch := strings.TrimSpace(c.Query("branch"))

	ds, ok := h.data(c)
	if !ok {
		return
	}

	toppers, err := analytics.TopPerformers(ds, n, branch)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(toppers),
		"toppers": toppers,
	})
}
