package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary Service version
// @Description Returns service name, version and content attribution
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /version [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Django Voice Docs API",
			"version":     "1.0.0",
			"description": "Voice-enabled Django documentation with translation and speech",
			"status":      "running",
			"attribution": gin.H{
				"content": "Django documentation, © Django Software Foundation and individual contributors",
				"license": "BSD 3-Clause",
				"source":  "https://docs.djangoproject.com/",
			},
		})
	}
}
