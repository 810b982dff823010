package scrape

import (
	"errors"
	"net/http"

	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/services/scheduler"
	"github.com/gin-gonic/gin"
)

// Post triggers a scrape run over all seed URLs
// @Summary Trigger scrape
// @Description Runs the scrape pipeline immediately; 409 when a run is active
// @Tags scrape
// @Produce json
// @Success 200 {object} types.ScrapeResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /api/v1/scrape [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := deps.Scheduler.Run(c.Request.Context())
		if err != nil {
			if errors.Is(err, scheduler.ErrRunInProgress) {
				c.JSON(http.StatusConflict, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "A scrape run is already in progress",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Scrape run failed",
				Error:   err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.ScrapeResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Fetched:      summary.Fetched,
			Updated:      summary.Updated,
			Unchanged:    summary.Unchanged,
			Failed:       summary.Failed,
			Duration:     summary.Duration,
		})
	}
}
