package documents

import (
	"context"
	"log"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/scraper"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// Service implements the DocumentService interface
type Service struct {
	repository DocumentRepository
}

var _ DocumentService = (*Service)(nil)

// NewService creates a new document store service
func NewService(repository DocumentRepository) *Service {
	return &Service{repository: repository}
}

// SyncDocument writes a fetched document and its extracted sections. When the
// stored content hash matches the fetched one the document is untouched and no
// downstream work (translation, speech) is triggered.
func (s *Service) SyncDocument(ctx context.Context, fetched *scraper.FetchResult, title string, extracted []scraper.ExtractedSection) (bool, error) {
	existing, err := s.repository.GetDocumentBySourceURL(ctx, fetched.URL)
	if err != nil && !IsNotFound(err) {
		return false, err
	}

	if existing != nil && existing.ContentHash == fetched.ContentHash {
		log.Printf("[INFO] Document %s unchanged, skipping sync", fetched.URL)
		if err := s.repository.UpdateDocumentStatus(ctx, existing.ID, models.ScrapeStatusUnchanged); err != nil {
			return false, err
		}
		return false, nil
	}

	doc := &models.Document{
		SourceURL:        fetched.URL,
		Title:            title,
		ContentHash:      fetched.ContentHash,
		ETag:             fetched.ETag,
		LastFetchedAt:    fetched.FetchedAt,
		LastScrapeStatus: models.ScrapeStatusOK,
	}

	sections := make([]models.Section, 0, len(extracted))
	for _, es := range extracted {
		sections = append(sections, models.Section{
			Ordinal:     es.Ordinal,
			Level:       es.Level,
			Heading:     es.Heading,
			Body:        es.Body,
			ContentHash: es.ContentHash,
		})
	}

	if err := s.repository.ReplaceDocumentSections(ctx, doc, sections); err != nil {
		return false, err
	}

	log.Printf("[INFO] Synced document %s with %d sections", fetched.URL, len(sections))
	return true, nil
}

// MarkUnchanged records a scrape pass that found no changes
func (s *Service) MarkUnchanged(ctx context.Context, sourceURL string) error {
	doc, err := s.repository.GetDocumentBySourceURL(ctx, sourceURL)
	if err != nil {
		return err
	}
	return s.repository.UpdateDocumentStatus(ctx, doc.ID, models.ScrapeStatusUnchanged)
}

func (s *Service) GetDocumentByID(ctx context.Context, id uint) (*models.Document, error) {
	return s.repository.GetDocumentByID(ctx, id)
}

func (s *Service) GetDocumentBySourceURL(ctx context.Context, url string) (*models.Document, error) {
	return s.repository.GetDocumentBySourceURL(ctx, url)
}

func (s *Service) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	return s.repository.ListDocuments(ctx)
}

func (s *Service) GetSectionByID(ctx context.Context, id uint) (*models.Section, error) {
	return s.repository.GetSectionByID(ctx, id)
}

func (s *Service) GetSectionsByDocumentID(ctx context.Context, documentID uint) ([]models.Section, error) {
	return s.repository.GetSectionsByDocumentID(ctx, documentID)
}

// Search performs a keyword search over stored sections
func (s *Service) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if query == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return s.repository.SearchSections(ctx, query, limit)
}
