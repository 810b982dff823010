package search

import (
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers search routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", Get(deps))
}
