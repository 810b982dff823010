package audio

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/models"
	docsvc "github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Post ensures an audio asset exists for arbitrary text
// @Summary Synthesize text
// @Description Returns the audio URL for a text, synthesizing on first request
// @Tags audio
// @Accept json
// @Produce json
// @Param request body types.AudioRequest true "Text and language"
// @Success 200 {object} types.AudioResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /api/v1/audio [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.AudioRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body: text is required",
			})
			return
		}

		if req.Language == "" {
			req.Language = string(models.LanguageEnglish)
		}
		if !models.IsSupportedLanguage(req.Language) {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: fmt.Sprintf("Unsupported language %q, expected one of en, sw, fr", req.Language),
			})
			return
		}

		asset, err := deps.SpeechService.GetOrSynthesize(c.Request.Context(), req.Text, models.Language(req.Language))
		if err != nil {
			c.JSON(http.StatusBadGateway, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Speech synthesis failed",
				Error:   err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.AudioResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			AudioURL:     fmt.Sprintf("/api/v1/audio/assets/%s", asset.TextHash),
			Language:     string(asset.Language),
			SizeBytes:    asset.SizeBytes,
		})
	}
}

// GetAsset streams a stored audio asset by its text hash
// @Summary Stream audio asset
// @Tags audio
// @Produce audio/mpeg
// @Param hash path string true "Asset text hash"
// @Success 200 {file} binary
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/audio/assets/{hash} [get]
func GetAsset(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := c.Param("hash")

		asset, err := deps.SpeechService.GetAsset(c.Request.Context(), hash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Audio asset not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load audio asset",
			})
			return
		}

		streamAsset(c, deps, asset)
	}
}

// GetSectionAudio streams the spoken audio for a section, synthesizing
// lazily on the first request for each (section, language) pair
// @Summary Stream section audio
// @Tags audio
// @Produce audio/mpeg
// @Param id path int true "Section ID"
// @Param lang query string false "Language code (en, sw, fr)"
// @Success 200 {file} binary
// @Failure 404 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /api/v1/audio/sections/{id} [get]
func GetSectionAudio(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid section ID",
			})
			return
		}

		lang := c.DefaultQuery("lang", string(models.LanguageEnglish))
		if !models.IsSupportedLanguage(lang) {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: fmt.Sprintf("Unsupported language %q, expected one of en, sw, fr", lang),
			})
			return
		}

		section, err := deps.DocumentService.GetSectionByID(c.Request.Context(), uint(id))
		if err != nil {
			if docsvc.IsNotFound(err) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status:  types.StatusError,
					Message: fmt.Sprintf("Section %d not found", id),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load section",
			})
			return
		}

		text, err := deps.TranslationService.GetOrCreateTranslation(c.Request.Context(), section, models.Language(lang))
		if err != nil {
			c.JSON(http.StatusBadGateway, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Translation failed",
				Error:   err.Error(),
			})
			return
		}

		asset, err := deps.SpeechService.GetOrSynthesizeSection(c.Request.Context(), section.ID, text, models.Language(lang))
		if err != nil {
			c.JSON(http.StatusBadGateway, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Speech synthesis failed",
				Error:   err.Error(),
			})
			return
		}

		streamAsset(c, deps, asset)
	}
}

func streamAsset(c *gin.Context, deps *types.Dependencies, asset *models.AudioAsset) {
	reader, err := deps.SpeechService.OpenAudio(c.Request.Context(), asset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "Failed to open audio stream",
		})
		return
	}
	defer reader.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, asset.SizeBytes, "audio/mpeg", reader, nil)
}
