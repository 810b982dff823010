package scrape

import (
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers scrape trigger routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Post(deps))
}
