package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements DocumentRepository interface
var _ DocumentRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ReplaceDocumentSections upserts the document row and replaces its section
// set in a single transaction, so readers never observe a mix of old and new
// sections. Translations whose source hash no longer matches any surviving
// section are removed in the same transaction.
func (r *Repository) ReplaceDocumentSections(ctx context.Context, doc *models.Document, sections []models.Section) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Document
		err := tx.Where("source_url = ?", doc.SourceURL).First(&existing).Error
		switch {
		case err == nil:
			doc.ID = existing.ID
			doc.CreatedAt = existing.CreatedAt
			if err := tx.Save(doc).Error; err != nil {
				return fmt.Errorf("updating document: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(doc).Error; err != nil {
				return fmt.Errorf("creating document: %w", err)
			}
		default:
			return fmt.Errorf("looking up document: %w", err)
		}

		// Collect old section IDs so stale translations can be dropped
		var oldSectionIDs []uint
		if err := tx.Model(&models.Section{}).
			Where("document_id = ?", doc.ID).
			Pluck("id", &oldSectionIDs).Error; err != nil {
			return fmt.Errorf("listing old sections: %w", err)
		}

		if len(oldSectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", oldSectionIDs).
				Delete(&models.Translation{}).Error; err != nil {
				return fmt.Errorf("deleting stale translations: %w", err)
			}
			if err := tx.Unscoped().Where("document_id = ?", doc.ID).
				Delete(&models.Section{}).Error; err != nil {
				return fmt.Errorf("deleting old sections: %w", err)
			}
		}

		for i := range sections {
			sections[i].ID = 0
			sections[i].DocumentID = doc.ID
		}
		if len(sections) > 0 {
			if err := tx.Create(&sections).Error; err != nil {
				return fmt.Errorf("creating sections: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return NewStorageError("document sync", err)
	}
	return nil
}

func (r *Repository) UpdateDocumentStatus(ctx context.Context, id uint, status models.ScrapeStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("id = ?", id).
		Update("last_scrape_status", status)
	if result.Error != nil {
		return fmt.Errorf("updating document status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("document", id)
	}
	return nil
}

func (r *Repository) DeleteDocument(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uint
		if err := tx.Model(&models.Section{}).
			Where("document_id = ?", id).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).
				Delete(&models.Translation{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("document_id = ?", id).
				Delete(&models.Section{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&models.Document{}, id).Error
	})
	if err != nil {
		return NewStorageError("document delete", err)
	}
	return nil
}

func (r *Repository) GetDocumentByID(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.ordinal ASC")
		}).
		First(&doc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("document", id)
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return &doc, nil
}

func (r *Repository) GetDocumentBySourceURL(ctx context.Context, url string) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).Where("source_url = ?", url).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("document", url)
		}
		return nil, fmt.Errorf("getting document by url: %w", err)
	}
	return &doc, nil
}

func (r *Repository) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	var summaries []DocumentSummary
	err := r.db.WithContext(ctx).Model(&models.Document{}).
		Select("documents.id, documents.source_url, documents.title, count(sections.id) as section_count").
		Joins("LEFT JOIN sections ON sections.document_id = documents.id AND sections.deleted_at IS NULL").
		Where("documents.deleted_at IS NULL").
		Group("documents.id").
		Order("documents.id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return summaries, nil
}

func (r *Repository) GetSectionByID(ctx context.Context, id uint) (*models.Section, error) {
	var section models.Section
	if err := r.db.WithContext(ctx).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("section", id)
		}
		return nil, fmt.Errorf("getting section: %w", err)
	}
	return &section, nil
}

func (r *Repository) GetSectionsByDocumentID(ctx context.Context, documentID uint) ([]models.Section, error) {
	var sections []models.Section
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("ordinal ASC").
		Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("getting sections: %w", err)
	}
	return sections, nil
}

// SearchSections performs a case-insensitive keyword match over headings and
// bodies. Heading matches rank before body-only matches.
func (r *Repository) SearchSections(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var results []SearchResult
	err := r.db.WithContext(ctx).Model(&models.Section{}).
		Select(`sections.id as section_id, sections.document_id, documents.source_url,
			sections.heading, sections.body, sections.level, sections.content_hash,
			CASE WHEN lower(sections.heading) LIKE ? THEN 0 ELSE 1 END as rank`, pattern).
		Joins("JOIN documents ON documents.id = sections.document_id").
		Where("sections.deleted_at IS NULL").
		Where("lower(sections.heading) LIKE ? OR lower(sections.body) LIKE ?", pattern, pattern).
		Order("rank ASC, sections.document_id ASC, sections.ordinal ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("searching sections: %w", err)
	}
	return results, nil
}
