package voice

import (
	"context"
	"fmt"
	"testing"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDocumentService struct {
	results  []documents.SearchResult
	sections map[uint]*models.Section
}

func (m *mockDocumentService) SyncDocument(ctx context.Context, fetched *scraper.FetchResult, title string, sections []scraper.ExtractedSection) (bool, error) {
	return false, nil
}

func (m *mockDocumentService) MarkUnchanged(ctx context.Context, sourceURL string) error {
	return nil
}

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
	section, ok := m.sections[id]
	if !ok {
		return nil, documents.ErrSectionNotFound
	}
	return section, nil
}

func (m *mockDocumentService) GetSectionsByDocumentID(ctx context.Context, documentID uint) ([]models.Section, error) {
	return nil, nil
}

func (m *mockDocumentService) Search(ctx context.Context, query string, limit int) ([]documents.SearchResult, error) {
	if len(m.results) > limit {
		return m.results[:limit], nil
	}
	return m.results, nil
}

type mockTranslationService struct{}

func (m *mockTranslationService) GetOrCreateTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, error) {
	return fmt.Sprintf("[%s] %s", lang, section.Body), nil
}

func (m *mockTranslationService) GetExistingTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, bool) {
	return "", false
}

func (m *mockTranslationService) TranslateAll(ctx context.Context, langs []models.Language) (int, error) {
	return 0, nil
}

func newTestProcessor(results []documents.SearchResult, sections map[uint]*models.Section) *Processor {
	return NewProcessor(
		&mockDocumentService{results: results, sections: sections},
		&mockTranslationService{},
	)
}

func modelSection(id uint, body string) *models.Section {
	s := &models.Section{Body: body}
	s.ID = id
	return s
}

func TestProcessRead(t *testing.T) {
	p := newTestProcessor(
		[]documents.SearchResult{{SectionID: 1, Heading: "Models"}},
		map[uint]*models.Section{1: modelSection(1, "A model maps to a table.")},
	)

	result, err := p.Process(context.Background(), "Kibena read models")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Reading about models", result.Message)
	assert.Equal(t, "A model maps to a table.", result.Response)
	assert.Equal(t, uint(1), result.SectionID)
	assert.Equal(t, "en", result.Language)
}

func TestProcessReadNoResults(t *testing.T) {
	p := newTestProcessor(nil, nil)

	result, err := p.Process(context.Background(), "kibena read quantum physics")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "quantum physics")
}

func TestProcessSearch(t *testing.T) {
	p := newTestProcessor(
		[]documents.SearchResult{
			{SectionID: 1, Heading: "Models", SourceURL: "https://example.org/models"},
			{SectionID: 2, Heading: "Model fields", SourceURL: "https://example.org/fields"},
		},
		nil,
	)

	result, err := p.Process(context.Background(), "Kibena search model")
	require.NoError(t, err)
	assert.True(t, result.Success)

	hits, ok := result.Response.([]SearchHit)
	require.True(t, ok)
	require.Len(t, hits, 2)
	assert.Equal(t, "Models", hits[0].Heading)
	assert.Equal(t, "https://example.org/models", hits[0].URL)
}

func TestProcessTranslate(t *testing.T) {
	p := newTestProcessor(
		[]documents.SearchResult{{SectionID: 3, Heading: "Views"}},
		map[uint]*models.Section{3: modelSection(3, "A view handles a request.")},
	)

	result, err := p.Process(context.Background(), "Kibena translate to french views")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "[fr] A view handles a request.", result.Response)
	assert.Equal(t, "fr", result.Language)
	assert.Equal(t, uint(3), result.SectionID)
}

func TestProcessTranslateUnsupportedLanguage(t *testing.T) {
	p := newTestProcessor(nil, nil)

	result, err := p.Process(context.Background(), "Kibena translate to german views")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "german")
}

func TestProcessHelp(t *testing.T) {
	p := newTestProcessor(nil, nil)

	result, err := p.Process(context.Background(), "Kibena help")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Response.(string), "Kibena read")
}

// The wake word matcher accepts the common recognizer mis-hearings
func TestProcessWakeWordVariants(t *testing.T) {
	p := newTestProcessor(nil, nil)

	for _, command := range []string{
		"cybena help",
		"key bena help",
		"keybena help",
		"KIBENA HELP",
	} {
		result, err := p.Process(context.Background(), command)
		require.NoError(t, err, command)
		assert.True(t, result.Success, command)
	}
}

func TestProcessUnknownCommand(t *testing.T) {
	p := newTestProcessor(nil, nil)

	result, err := p.Process(context.Background(), "Kibena make coffee")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Unknown command", result.Message)
}

func TestProcessEmptyCommand(t *testing.T) {
	p := newTestProcessor(nil, nil)

	result, err := p.Process(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No command recognized", result.Message)
}
