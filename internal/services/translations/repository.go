package translations

import (
	"context"
	"errors"
	"fmt"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

var _ TranslationRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetBySectionAndLanguage(ctx context.Context, sectionID uint, lang models.Language) (*models.Translation, error) {
	var translation models.Translation
	if err := r.db.WithContext(ctx).
		Where("section_id = ? AND language = ?", sectionID, lang).
		First(&translation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("getting translation: %w", err)
	}
	return &translation, nil
}

// Upsert creates the translation row or replaces an existing one for the
// same (section, language) pair.
func (r *Repository) Upsert(ctx context.Context, translation *models.Translation) error {
	var existing models.Translation
	err := r.db.WithContext(ctx).
		Where("section_id = ? AND language = ?", translation.SectionID, translation.Language).
		First(&existing).Error
	switch {
	case err == nil:
		translation.ID = existing.ID
		translation.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(translation).Error; err != nil {
			return fmt.Errorf("updating translation: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(translation).Error; err != nil {
			return fmt.Errorf("creating translation: %w", err)
		}
	default:
		return fmt.Errorf("looking up translation: %w", err)
	}
	return nil
}

func (r *Repository) DeleteBySectionID(ctx context.Context, sectionID uint) error {
	if err := r.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Delete(&models.Translation{}).Error; err != nil {
		return fmt.Errorf("deleting translations: %w", err)
	}
	return nil
}

// ListMissing returns sections that have no current translation for lang:
// either no row at all, or a row whose source hash no longer matches the
// section content.
func (r *Repository) ListMissing(ctx context.Context, lang models.Language) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.WithContext(ctx).Model(&models.Section{}).
		Joins(`LEFT JOIN translations ON translations.section_id = sections.id
			AND translations.language = ? AND translations.deleted_at IS NULL`, lang).
		Where("sections.deleted_at IS NULL").
		Where("translations.id IS NULL OR translations.source_hash != sections.content_hash").
		Order("sections.document_id ASC, sections.ordinal ASC").
		Find(&sections).Error
	if err != nil {
		return nil, fmt.Errorf("listing untranslated sections: %w", err)
	}
	return sections, nil
}
