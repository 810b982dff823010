package documents

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/models"
	docsvc "github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/gin-gonic/gin"
)

// GetAll lists all scraped documentation pages
// @Summary List documents
// @Description Lists every scraped documentation page with its section count
// @Tags documents
// @Produce json
// @Success 200 {object} types.DocumentListResponse
// @Router /api/v1/documents [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := deps.DocumentService.ListDocuments(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to list documents",
			})
			return
		}

		docs := make([]types.DocumentSummaryDTO, 0, len(summaries))
		for _, s := range summaries {
			docs = append(docs, types.DocumentSummaryDTO{
				ID:           s.ID,
				SourceURL:    s.SourceURL,
				Title:        s.Title,
				SectionCount: s.SectionCount,
			})
		}

		c.JSON(http.StatusOK, types.DocumentListResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Documents:    docs,
			Count:        len(docs),
		})
	}
}

// GetByID returns one document with all of its sections
// @Summary Get document
// @Description Returns a document and its sections, optionally translated
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Param lang query string false "Language code (en, sw, fr)"
// @Success 200 {object} types.DocumentResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/documents/{id} [get]
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		lang, ok := parseLang(c)
		if !ok {
			return
		}

		doc, err := deps.DocumentService.GetDocumentByID(c.Request.Context(), id)
		if err != nil {
			if docsvc.IsNotFound(err) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status:  types.StatusError,
					Message: fmt.Sprintf("Document %d not found", id),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load document",
			})
			return
		}

		sections := make([]types.SectionDTO, 0, len(doc.Sections))
		for i := range doc.Sections {
			sections = append(sections, renderSection(c, deps, &doc.Sections[i], lang))
		}

		c.JSON(http.StatusOK, types.DocumentResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			ID:           doc.ID,
			SourceURL:    doc.SourceURL,
			Title:        doc.Title,
			Sections:     sections,
		})
	}
}

// GetSection returns a single section
// @Summary Get section
// @Description Returns one section, optionally translated, with its audio URL
// @Tags documents
// @Produce json
// @Param id path int true "Section ID"
// @Param lang query string false "Language code (en, sw, fr)"
// @Success 200 {object} types.SectionResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sections/{id} [get]
func GetSection(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		lang, ok := parseLang(c)
		if !ok {
			return
		}

		cacheKey := fmt.Sprintf("section:%d:%s", id, lang)
		if deps.ResponseCache != nil {
			if cached, found := deps.ResponseCache.Get(c.Request.Context(), cacheKey); found {
				c.Data(http.StatusOK, "application/json", cached)
				return
			}
		}

		section, err := deps.DocumentService.GetSectionByID(c.Request.Context(), id)
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

		response := types.SectionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Section:      renderSection(c, deps, section, lang),
		}

		// Only cache fully-rendered responses; a fallback body would pin
		// the English text past the translation becoming available.
		if deps.ResponseCache != nil && response.Section.Language == string(lang) {
			if payload, err := json.Marshal(response); err == nil {
				_ = deps.ResponseCache.Set(c.Request.Context(), cacheKey, payload, deps.SectionCacheTTL)
			}
		}

		c.JSON(http.StatusOK, response)
	}
}

// renderSection builds a SectionDTO in the requested language. A failed or
// missing translation falls back to the English body rather than erroring.
func renderSection(c *gin.Context, deps *types.Dependencies, section *models.Section, lang models.Language) types.SectionDTO {
	body := section.Body
	served := models.LanguageEnglish

	if lang != models.LanguageEnglish {
		translated, err := deps.TranslationService.GetOrCreateTranslation(c.Request.Context(), section, lang)
		if err != nil {
			log.Printf("[WARN] Translation of section %d to %s failed, serving English: %v", section.ID, lang, err)
		} else {
			body = translated
			served = lang
		}
	}

	return types.SectionDTO{
		ID:       section.ID,
		Ordinal:  section.Ordinal,
		Level:    section.Level,
		Heading:  section.Heading,
		Body:     body,
		Language: string(served),
		AudioURL: AudioURL(section.ID, served),
	}
}

// AudioURL builds the playback URL for a section in a language
func AudioURL(sectionID uint, lang models.Language) string {
	return fmt.Sprintf("/api/v1/audio/sections/%d?lang=%s", sectionID, lang)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "Invalid ID parameter",
		})
		return 0, false
	}
	return uint(id), true
}

func parseLang(c *gin.Context) (models.Language, bool) {
	lang := c.DefaultQuery("lang", string(models.LanguageEnglish))
	if !models.IsSupportedLanguage(lang) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Status:  types.StatusError,
			Message: fmt.Sprintf("Unsupported language %q, expected one of en, sw, fr", lang),
		})
		return "", false
	}
	return models.Language(lang), true
}
