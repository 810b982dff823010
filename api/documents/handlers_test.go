package documents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/models"
	docsvc "github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/scraper"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock document service for testing
type mockDocumentService struct {
	documents map[uint]*models.Document
	sections  map[uint]*models.Section
	summaries []docsvc.DocumentSummary
}

func (m *mockDocumentService) SyncDocument(ctx context.Context, fetched *scraper.FetchResult, title string, sections []scraper.ExtractedSection) (bool, error) {
	return false, nil
}
func (m *mockDocumentService) MarkUnchanged(ctx context.Context, sourceURL string) error { return nil }
func (m *mockDocumentService) GetDocumentByID(ctx context.Context, id uint) (*models.Document, error) {
	doc, ok := m.documents[id]
	if !ok {
		return nil, docsvc.NewNotFoundError("document", id)
	}
	return doc, nil
}
func (m *mockDocumentService) GetDocumentBySourceURL(ctx context.Context, url string) (*models.Document, error) {
	return nil, docsvc.ErrDocumentNotFound
}
func (m *mockDocumentService) ListDocuments(ctx context.Context) ([]docsvc.DocumentSummary, error) {
	return m.summaries, nil
}
func (m *mockDocumentService) GetSectionByID(ctx context.Context, id uint) (*models.Section, error) {
	section, ok := m.sections[id]
	if !ok {
		return nil, docsvc.NewNotFoundError("section", id)
	}
	return section, nil
}
func (m *mockDocumentService) GetSectionsByDocumentID(ctx context.Context, documentID uint) ([]models.Section, error) {
	return nil, nil
}
func (m *mockDocumentService) Search(ctx context.Context, query string, limit int) ([]docsvc.SearchResult, error) {
	return nil, nil
}

// Mock translation service that prefixes bodies with the language code
type mockTranslationService struct {
	fail bool
}

func (m *mockTranslationService) GetOrCreateTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, error) {
	if m.fail {
		return "", errors.New("translator down")
	}
	return "[" + string(lang) + "] " + section.Body, nil
}
func (m *mockTranslationService) GetExistingTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, bool) {
	return "", false
}
func (m *mockTranslationService) TranslateAll(ctx context.Context, langs []models.Language) (int, error) {
	return 0, nil
}

func perform(handler gin.HandlerFunc, target, idParam string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	if idParam != "" {
		c.Params = gin.Params{{Key: "id", Value: idParam}}
	}
	handler(c)
	return w
}

func docWithSections() *models.Document {
	doc := &models.Document{
		SourceURL: "https://example.org/models/",
		Title:     "Models",
	}
	doc.ID = 1
	s1 := models.Section{DocumentID: 1, Ordinal: 0, Level: 1, Heading: "Models", Body: "Intro."}
	s1.ID = 10
	s2 := models.Section{DocumentID: 1, Ordinal: 1, Level: 2, Heading: "Fields", Body: "Field docs."}
	s2.ID = 11
	doc.Sections = []models.Section{s1, s2}
	return doc
}

func TestGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	deps := &types.Dependencies{
		DocumentService: &mockDocumentService{
			summaries: []docsvc.DocumentSummary{
				{ID: 1, SourceURL: "https://example.org/models/", Title: "Models", SectionCount: 2},
			},
		},
	}

	w := perform(GetAll(deps), "/api/v1/documents", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DocumentListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Models", resp.Documents[0].Title)
	assert.Equal(t, int64(2), resp.Documents[0].SectionCount)
}

func TestGetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	doc := docWithSections()
	deps := &types.Dependencies{
		DocumentService:    &mockDocumentService{documents: map[uint]*models.Document{1: doc}},
		TranslationService: &mockTranslationService{},
	}

	w := perform(GetByID(deps), "/api/v1/documents/1", "1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DocumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, "Models", resp.Sections[0].Heading)
	assert.Equal(t, "en", resp.Sections[0].Language)
	assert.Equal(t, "/api/v1/audio/sections/10?lang=en", resp.Sections[0].AudioURL)
}

func TestGetByIDTranslated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	doc := docWithSections()
	deps := &types.Dependencies{
		DocumentService:    &mockDocumentService{documents: map[uint]*models.Document{1: doc}},
		TranslationService: &mockTranslationService{},
	}

	w := perform(GetByID(deps), "/api/v1/documents/1?lang=sw", "1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DocumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "[sw] Intro.", resp.Sections[0].Body)
	assert.Equal(t, "sw", resp.Sections[0].Language)
	assert.Equal(t, "/api/v1/audio/sections/10?lang=sw", resp.Sections[0].AudioURL)
}

func TestGetByIDErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	deps := &types.Dependencies{
		DocumentService:    &mockDocumentService{},
		TranslationService: &mockTranslationService{},
	}

	tests := []struct {
		name     string
		target   string
		idParam  string
		expected int
	}{
		{"not found", "/api/v1/documents/99", "99", http.StatusNotFound},
		{"invalid id", "/api/v1/documents/abc", "abc", http.StatusBadRequest},
		{"unsupported language", "/api/v1/documents/1?lang=de", "1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(GetByID(deps), tt.target, tt.idParam)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestGetSection(t *testing.T) {
	gin.SetMode(gin.TestMode)

	section := &models.Section{DocumentID: 1, Ordinal: 0, Level: 1, Heading: "Models", Body: "Intro."}
	section.ID = 10
	deps := &types.Dependencies{
		DocumentService:    &mockDocumentService{sections: map[uint]*models.Section{10: section}},
		TranslationService: &mockTranslationService{},
	}

	w := perform(GetSection(deps), "/api/v1/sections/10", "10")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(10), resp.Section.ID)
	assert.Equal(t, "Intro.", resp.Section.Body)
}

// A failing translator degrades to the English body instead of erroring
func TestGetSectionTranslationFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	section := &models.Section{DocumentID: 1, Heading: "Models", Body: "Intro."}
	section.ID = 10
	deps := &types.Dependencies{
		DocumentService:    &mockDocumentService{sections: map[uint]*models.Section{10: section}},
		TranslationService: &mockTranslationService{fail: true},
	}

	w := perform(GetSection(deps), "/api/v1/sections/10?lang=fr", "10")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Intro.", resp.Section.Body)
	assert.Equal(t, "en", resp.Section.Language)
	assert.Equal(t, "/api/v1/audio/sections/10?lang=en", resp.Section.AudioURL)
}
