package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumardhruv88/result-analytics/internal/server/handlers"
	"github.com/kumardhruv88/result-analytics/internal/server/middleware"
)

// New wires handlers and middleware into an HTTP router.
func New(handler *handlers.Handler, mw *middleware.Manager) http.Handler {
	router := gin.Default()

	router.GET("/health", handler.Health)

	admin := router.Group("/admin")
	admin.Use(mw.Auth(), mw.RateLimit(), mw.Admin())
	{
		admin.POST("/reload", handler.Reload)
	}

	v1 := router.Group("/api/v1")
	v1.Use(mw.Auth(), mw.RateLimit())
	{
		stats := v1.Group("/stats")
		{
			stats.GET("/", handler.GetOverallStats)
			stats.GET("/descriptive", handler.GetDescriptiveStats)
			stats.GET("/correlation", handler.GetCorrelationMatrix)
			stats.GET("/histogram", handler.GetHistogram)
			stats.GET("/bands", handler.GetPerformanceBands)
		}

		branches := v1.Group("/branches")
		{
			branches.GET("/", handler.GetBranchStats)
			branches.GET("/:branch/ranking", handler.GetBranchRanking)
		}

		subjects := v1.Group("/subjects")
		{
			subjects.GET("/", handler.GetSubjectStats)
			subjects.GET("/:code", handler.GetSubject)
		}

		students := v1.Group("/students")
		{
			students.GET("/search", handler.SearchStudents)
			students.GET("/:roll", handler.GetStudentReport)
		}

		v1.GET("/ranking", handler.GetRanking)
		v1.GET("/toppers", handler.GetToppers)
		v1.GET("/export/:report", handler.ExportReport)
	}

	return router
}
