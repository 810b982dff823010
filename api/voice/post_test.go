package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/scraper"
	voicesvc "github.com/GloryMsasalaga/django-voice/internal/services/voice"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal document service that serves one known section
type mockDocumentService struct{}

func (m *mockDocumentService) SyncDocument(ctx context.Context, fetched *scraper.FetchResult, title string, sections []scraper.ExtractedSection) (bool, error) {
	return false, nil
}
func (m *mockDocumentService) MarkUnchanged(ctx context.Context, sourceURL string) error { return nil }
func (m *mockDocumentService) GetDocumentByID(ctx context.Context, id uint) (*models.Document, error) {
	return nil, documents.ErrDocumentNotFound
}
func (m *mockDocumentService) GetDocumentBySourceURL(ctx context.Context, url string) (*models.Document, error) {
	return nil, documents.ErrDocumentNotFound
}
func (m *mockDocumentService) ListDocuments(ctx context.Context) ([]documents.DocumentSummary, error) {
	return nil, nil
}
func (m *mockDocumentService) GetSectionByID(ctx context.Context, id uint) (*models.Section, error) {
	section := &models.Section{Heading: "Models", Body: "A model maps to a table."}
	section.ID = id
	return section, nil
}
func (m *mockDocumentService) GetSectionsByDocumentID(ctx context.Context, documentID uint) ([]models.Section, error) {
	return nil, nil
}
func (m *mockDocumentService) Search(ctx context.Context, query string, limit int) ([]documents.SearchResult, error) {
	return []documents.SearchResult{{SectionID: 7, Heading: "Models"}}, nil
}

type mockTranslationService struct{}

func (m *mockTranslationService) GetOrCreateTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, error) {
	return section.Body, nil
}
func (m *mockTranslationService) GetExistingTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, bool) {
	return "", false
}
func (m *mockTranslationService) TranslateAll(ctx context.Context, langs []models.Language) (int, error) {
	return 0, nil
}

func performPost(deps *types.Dependencies, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/voice", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	Post(deps)(c)
	return w
}

func testDeps() *types.Dependencies {
	return &types.Dependencies{
		VoiceProcessor: voicesvc.NewProcessor(&mockDocumentService{}, &mockTranslationService{}),
	}
}

func TestPostReadCommand(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := performPost(testDeps(), types.VoiceRequest{Command: "Kibena read models"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "A model maps to a table.", resp["response"])
	assert.Equal(t, float64(7), resp["section_id"])
	assert.Equal(t, "/api/v1/audio/sections/7?lang=en", resp["audio_url"])
}

func TestPostHelpCommand(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := performPost(testDeps(), types.VoiceRequest{Command: "Kibena help"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	// Help has no section, so no audio link is attached
	_, hasAudio := resp["audio_url"]
	assert.False(t, hasAudio)
}

func TestPostUnknownCommand(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := performPost(testDeps(), types.VoiceRequest{Command: "Kibena dance"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestPostMissingCommand(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := performPost(testDeps(), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
