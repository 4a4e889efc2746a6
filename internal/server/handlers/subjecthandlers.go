package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kumardhruv88/result-analytics/internal/analytics"
)

// GetSubjectStats serves the per-subject aggregate table, hardest
// subject first.
func (h *Handler) GetSubjectStats(c *gin.Context) {
	ds, ok := h.data(c)
	if !ok {
		return
	}

	stats, err := h.memoized(ds.Fingerprint+":subjects", func() (any, error) {
		return analytics.SubjectAggregate(ds, analytics.DefaultTopK)
	})
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	subjects := stats.([]analytics.SubjectStats)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(subjects),
		"subjects": subjects,
	})
}

// GetSubject serves one subject's aggregate, including the grade
// histogram and top performers.
func (h *Handler) GetSubject(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject code is required"})
		return
	}

	ds, ok := h.data(c)
	if !ok {
		return
	}

	subjects, err := analytics.SubjectAggregate(ds, analytics.DefaultTopK)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	for _, s := range subjects {
		if strings.EqualFold(s.Code, code) {
			c.JSON(http.StatusOK, s)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "unknown subject"})
}
