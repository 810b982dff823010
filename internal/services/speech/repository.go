package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

var _ AssetRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByTextHash(ctx context.Context, textHash string) (*models.AudioAsset, error) {
	var asset models.AudioAsset
	if err := r.db.WithContext(ctx).
		Where("text_hash = ?", textHash).
		First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *Repository) Create(ctx context.Context, asset *models.AudioAsset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("creating audio asset: %w", err)
	}
	return nil
}

func (r *Repository) UpdateLastUsed(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Model(&models.AudioAsset{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now()).Error; err != nil {
		return fmt.Errorf("updating last used: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.AudioAsset{}, id).Error; err != nil {
		return fmt.Errorf("deleting audio asset: %w", err)
	}
	return nil
}

func (r *Repository) GetOlderThan(ctx context.Context, days int) ([]models.AudioAsset, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var assets []models.AudioAsset
	if err := r.db.WithContext(ctx).
		Where("last_used_at < ?", cutoff).
		Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("listing old audio assets: %w", err)
	}
	return assets, nil
}
