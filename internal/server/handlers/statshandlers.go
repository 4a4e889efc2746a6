package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kumardhruv88/result-analytics/internal/analytics"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

// GetOverallStats serves the dashboard-wide KPI block.
func (h *Handler) GetOverallStats(c *gin.Context) {
	ds, ok := h.data(c)
	if !ok {
		return
	}

	stats, err := h.memoized(ds.Fingerprint+":overview", func() (any, error) {
		return analytics.OverallStats(ds)
	})
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetDescriptiveStats serves the descriptive summary of one numeric
// field.
func (h *Handler) GetDescriptiveStats(c *gin.Context) {
	field := strings.ToLower(strings.TrimSpace(c.DefaultQuery("field", analytics.FieldCGPA)))

	ds, ok := h.data(c)
	if !ok {
		return
	}

	values, err := numericValues(ds.Records, field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := analytics.Describe(values)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"field":   field,
		"summary": summary,
	})
}

// GetCorrelationMatrix serves pairwise Pearson correlations over the
// requested numeric fields.
func (h *Handler) GetCorrelationMatrix(c *gin.Context) {
	fieldsParam := strings.TrimSpace(c.DefaultQuery("fields", "cgpa,sgpa,backlogs"))
	var fields []string
	for _, f := range strings.Split(fieldsParam, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			fields = append(fields, f)
		}
	}

	ds, ok := h.data(c)
	if !ok {
		return
	}

	matrix, err := analytics.CorrelationMatrix(ds, fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// GetHistogram serves the CGPA histogram.
func (h *Handler) GetHistogram(c *gin.Context) {
	bins := 10
	if value := strings.TrimSpace(c.Query("bins")); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bins parameter must be a positive integer"})
			return
		}
		bins = n
	}

	ds, ok := h.data(c)
	if !ok {
		return
	}

	hist, err := analytics.GPAHistogram(ds, bins)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bins":      bins,
		"histogram": hist,
	})
}

// GetPerformanceBands serves the High/Average/At-Risk banding.
func (h *Handler) GetPerformanceBands(c *gin.Context) {
	ds, ok := h.data(c)
	if !ok {
		return
	}

	bands, err := analytics.PerformanceBands(ds)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bands": bands})
}

func respondAnalyticsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analytics.ErrNoData), errors.Is(err, analytics.ErrEmptyInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, analytics.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func numericValues(records []types.StudentRecord, field string) ([]float64, error) {
	var values []float64
	for i := range records {
		var v *float64
		switch field {
		case analytics.FieldCGPA:
			v = records[i].CGPA
		case analytics.FieldSGPA:
			v = records[i].SGPA
		case analytics.FieldCredits:
			v = records[i].Credits
		case analytics.FieldBacklogs:
			if records[i].Backlogs != nil {
				f := float64(*records[i].Backlogs)
				v = &f
			}
		default:
			return nil, errors.New("unknown numeric field " + strconv.Quote(field))
		}
		if v != nil {
			values = append(values, *v)
		}
	}
	return values, nil
}
