package voice

import (
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers voice command routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Post(deps))
}
