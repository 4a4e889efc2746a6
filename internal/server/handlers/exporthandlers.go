package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kumardhruv88/result-analytics/internal/export"
)

// ExportReport streams a named report in the requested format as a file
// download.
func (h *Handler) ExportReport(c *gin.Context) {
	report := export.Report(strings.ToLower(strings.TrimSpace(c.Param("report"))))
	format := export.Format(strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", string(export.FormatCSV)))))

	switch format {
	case export.FormatCSV, export.FormatExcel, export.FormatJSON:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of csv, xlsx, json"})
		return
	}

	n, err := parseTopN(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ds, ok := h.data(c)
	if !ok {
		return
	}

	data, name, err := export.Build(report, format, ds, n)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, format.ContentType(), data)
}
