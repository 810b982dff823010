package documents

import (
	"context"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/scraper"
)

// DocumentSummary is a list-view projection of a Document
type DocumentSummary struct {
	ID           uint   `json:"id"`
	SourceURL    string `json:"source_url"`
	Title        string `json:"title"`
	SectionCount int64  `json:"section_count"`
}

// SearchResult is one section matched by a keyword query
type SearchResult struct {
	SectionID   uint   `json:"section_id"`
	DocumentID  uint   `json:"document_id"`
	SourceURL   string `json:"source_url"`
	Heading     string `json:"heading"`
	Body        string `json:"body"`
	Level       int    `json:"level"`
	ContentHash string `json:"-"`
}

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	// Write operations
	ReplaceDocumentSections(ctx context.Context, doc *models.Document, sections []models.Section) error
	UpdateDocumentStatus(ctx context.Context, id uint, status models.ScrapeStatus) error
	DeleteDocument(ctx context.Context, id uint) error

	// Read operations
	GetDocumentByID(ctx context.Context, id uint) (*models.Document, error)
	GetDocumentBySourceURL(ctx context.Context, url string) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]DocumentSummary, error)
	GetSectionByID(ctx context.Context, id uint) (*models.Section, error)
	GetSectionsByDocumentID(ctx context.Context, documentID uint) ([]models.Section, error)
	SearchSections(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// DocumentService defines the business logic for the documentation store
type DocumentService interface {
	// SyncDocument upserts a fetched document, replacing its sections
	// transactionally. Returns (false, nil) when the content hash is
	// unchanged and nothing was written.
	SyncDocument(ctx context.Context, fetched *scraper.FetchResult, title string, sections []scraper.ExtractedSection) (bool, error)

	// MarkUnchanged records a scrape that detected no change
	MarkUnchanged(ctx context.Context, sourceURL string) error

	GetDocumentByID(ctx context.Context, id uint) (*models.Document, error)
	GetDocumentBySourceURL(ctx context.Context, url string) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]DocumentSummary, error)
	GetSectionByID(ctx context.Context, id uint) (*models.Section, error)
	GetSectionsByDocumentID(ctx context.Context, documentID uint) ([]models.Section, error)
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}
