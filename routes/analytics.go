package routes

import (
	"errors"
	"io/fs"
	"net/http"

	"socially/internal/logger"
	"socially/internal/mockdata"
	"socially/utils"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes serves per-tab summaries of the generated dataset at dataPath
func SetupAnalyticsRoutes(router *gin.Engine, dataPath string) {
	analytics := router.Group("/api/analytics")

	analytics.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": mockdata.Categories})
	})

	analytics.GET("/:category", func(c *gin.Context) {
		category, err := mockdata.ParseCategory(c.Param("category"))
		if err != nil {
			utils.RespondWithBadRequest(c, err.Error())
			return
		}

		posts, err := mockdata.ReadCSVFile(dataPath)
		if errors.Is(err, fs.ErrNotExist) {
			utils.RespondWithNotFound(c, "No analytics data has been generated yet")
			return
		}
		if err != nil {
			logger.Error("Failed to load analytics data", "path", dataPath, "error", err)
			utils.RespondWithInternalError(c, "Failed to load analytics data")
			return
		}

		c.JSON(http.StatusOK, mockdata.Summarize(category, posts))
	})
}
