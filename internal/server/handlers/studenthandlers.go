package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kumardhruv88/result-analytics/internal/analytics"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

// SearchStudents matches students by roll number or name substring. No
// match is an empty list, not an error.
func (h *Handler) SearchStudents(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query parameter 'q' is required"})
		return
	}

	ds, ok := h.data(c)
	if !ok {
		return
	}

	matches := ds.Search(query)
	if matches == nil {
		matches = []types.StudentRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"count":    len(matches),
		"students": matches,
	})
}

// GetStudentReport serves one student's full analytics view: record,
// ranks, percentile and per-subject peer comparison.
func (h *Handler) GetStudentReport(c *gin.Context) {
	roll := strings.TrimSpace(c.Param("roll"))
	if roll == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roll number is required"})
		return
	}

	ds, ok := h.data(c)
	if !ok {
		return
	}

	report, err := analytics.BuildStudentReport(ds, roll)
	if err != nil {
		if errors.Is(err, analytics.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
