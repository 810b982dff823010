package audio

import (
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers audio synthesis and playback routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Post(deps))
	group.GET("/assets/:hash", GetAsset(deps))
	group.GET("/sections/:id", GetSectionAudio(deps))
}
