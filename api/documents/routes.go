package documents

import (
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers document and section routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("/documents", GetAll(deps))
	group.GET("/documents/:id", GetByID(deps))
	group.GET("/sections/:id", GetSection(deps))
}
