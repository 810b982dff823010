package voice

import (
	"net/http"

	"github.com/GloryMsasalaga/django-voice/api/documents"
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/gin-gonic/gin"
)

// Post processes a transcribed voice command
// @Summary Process voice command
// @Description Dispatches a transcribed command (read, search, translate, help)
// @Tags voice
// @Accept json
// @Produce json
// @Param request body types.VoiceRequest true "Transcribed command"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/voice [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.VoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body: command is required",
			})
			return
		}

		result, err := deps.VoiceProcessor.Process(c.Request.Context(), req.Command)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Command processing failed",
				Error:   err.Error(),
			})
			return
		}

		response := gin.H{
			"success":  result.Success,
			"message":  result.Message,
			"response": result.Response,
		}
		if result.SectionID != 0 {
			response["section_id"] = result.SectionID
			response["language"] = result.Language
			response["audio_url"] = documents.AudioURL(result.SectionID, models.Language(result.Language))
		}

		c.JSON(http.StatusOK, response)
	}
}
