package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/GloryMsasalaga/django-voice/api/documents"
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/models"
	docsvc "github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit  = 20
	MaxLimit      = 100
	previewRunes  = 300
	cacheKeyShape = "search:%s:%s:%d"
)

// Get handles keyword search over section headings and bodies
// @Summary Search documentation
// @Description Case-insensitive keyword search; heading matches rank first
// @Tags search
// @Produce json
// @Param q query string true "Search query"
// @Param lang query string false "Language code (en, sw, fr)"
// @Param limit query int false "Maximum results (default 20, max 100)"
// @Success 200 {object} types.SearchResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Missing required query parameter q",
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

		limit := DefaultLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "limit must be a positive integer",
				})
				return
			}
			limit = parsed
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}

		cacheKey := fmt.Sprintf(cacheKeyShape, query, lang, limit)
		if deps.ResponseCache != nil {
			if cached, ok := deps.ResponseCache.Get(c.Request.Context(), cacheKey); ok {
				c.Data(http.StatusOK, "application/json", cached)
				return
			}
		}

		results, err := deps.DocumentService.Search(c.Request.Context(), query, limit)
		if err != nil {
			if errors.Is(err, docsvc.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Invalid search query",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Search failed",
			})
			return
		}

		response := buildResponse(c, deps, query, models.Language(lang), results)

		if deps.ResponseCache != nil {
			if payload, err := json.Marshal(response); err == nil {
				_ = deps.ResponseCache.Set(c.Request.Context(), cacheKey, payload, deps.SearchCacheTTL)
			}
		}

		c.JSON(http.StatusOK, response)
	}
}

// buildResponse renders search results with truncated previews. Previews
// are served in the requested language only when a current translation is
// already stored; search never triggers translation calls.
func buildResponse(c *gin.Context, deps *types.Dependencies, query string, lang models.Language, results []docsvc.SearchResult) types.SearchResponse {
	dtos := make([]types.SearchResultDTO, 0, len(results))
	for _, r := range results {
		body := r.Body
		servedLang := models.LanguageEnglish

		if lang != models.LanguageEnglish && deps.TranslationService != nil {
			section := &models.Section{Body: r.Body, ContentHash: r.ContentHash}
			section.ID = r.SectionID
			if translated, ok := deps.TranslationService.GetExistingTranslation(c.Request.Context(), section, lang); ok {
				body = translated
				servedLang = lang
			}
		}

		dtos = append(dtos, types.SearchResultDTO{
			SectionID:  r.SectionID,
			DocumentID: r.DocumentID,
			SourceURL:  r.SourceURL,
			Heading:    r.Heading,
			Preview:    truncateRunes(body, previewRunes),
			AudioURL:   documents.AudioURL(r.SectionID, servedLang),
		})
	}

	return types.SearchResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK},
		Query:        query,
		Language:     string(lang),
		Results:      dtos,
		Count:        len(dtos),
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
