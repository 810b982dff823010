package speech

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"gorm.io/gorm"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	synthesizer Synthesizer
	repository  AssetRepository
	storage     StorageBackend
}

var _ Service = (*ServiceImpl)(nil)

// NewService creates a new speech service
func NewService(synthesizer Synthesizer, repository AssetRepository, storage StorageBackend) *ServiceImpl {
	return &ServiceImpl{
		synthesizer: synthesizer,
		repository:  repository,
		storage:     storage,
	}
}

// TextHash derives the cache key for a (text, language) pair
func TextHash(text string, lang models.Language) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s_%s", text, lang)))
	return hex.EncodeToString(sum[:])
}

// GetOrSynthesize returns the cached audio asset for a (text, language) pair,
// invoking the synthesizer at most once per distinct pair until the text
// changes. A hit refreshes LastUsedAt.
func (s *ServiceImpl) GetOrSynthesize(ctx context.Context, text string, lang models.Language) (*models.AudioAsset, error) {
	return s.getOrSynthesize(ctx, nil, text, lang)
}

// GetOrSynthesizeSection is GetOrSynthesize recording the originating section
func (s *ServiceImpl) GetOrSynthesizeSection(ctx context.Context, sectionID uint, text string, lang models.Language) (*models.AudioAsset, error) {
	return s.getOrSynthesize(ctx, &sectionID, text, lang)
}

func (s *ServiceImpl) getOrSynthesize(ctx context.Context, sectionID *uint, text string, lang models.Language) (*models.AudioAsset, error) {
	if !models.IsSupportedLanguage(string(lang)) {
		return nil, NewServiceError(string(lang), 0, fmt.Errorf("unsupported language"))
	}
	if text == "" {
		return nil, NewServiceError(string(lang), 0, fmt.Errorf("empty text"))
	}

	hash := TextHash(text, lang)

	asset, err := s.repository.GetByTextHash(ctx, hash)
	if err == nil && s.storage.Exists(ctx, asset.Path) {
		if err := s.repository.UpdateLastUsed(ctx, asset.ID); err != nil {
			log.Printf("[WARN] Failed to update last used timestamp: %v", err)
		}
		return asset, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		// Row exists but the file is gone; drop the row and regenerate
		log.Printf("[WARN] Audio file missing for asset %d, regenerating", asset.ID)
		if delErr := s.repository.Delete(ctx, asset.ID); delErr != nil {
			log.Printf("[WARN] Failed to delete orphaned asset row: %v", delErr)
		}
	}

	audio, err := s.synthesizer.Synthesize(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_%s.mp3", hash, lang)
	path, err := s.storage.Save(ctx, bytes.NewReader(audio), filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save audio: %w", err)
	}

	asset = &models.AudioAsset{
		TextHash:  hash,
		Language:  lang,
		Path:      path,
		SizeBytes: int64(len(audio)),
		SectionID: sectionID,
	}
	if err := s.repository.Create(ctx, asset); err != nil {
		// A concurrent request for the same pair may have inserted the row
		// first. The file path is derived from the hash and shared with that
		// row, so it must not be deleted before checking.
		if existing, getErr := s.repository.GetByTextHash(ctx, hash); getErr == nil {
			log.Printf("[INFO] Reusing audio asset %d created concurrently", existing.ID)
			return existing, nil
		}
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			log.Printf("[WARN] Failed to cleanup audio file after database error: %v", delErr)
		}
		return nil, err
	}

	log.Printf("[INFO] Synthesized audio for language %s (%d bytes)", lang, len(audio))
	return asset, nil
}

// GetAsset looks up an asset by text hash. It never synthesizes.
func (s *ServiceImpl) GetAsset(ctx context.Context, textHash string) (*models.AudioAsset, error) {
	return s.repository.GetByTextHash(ctx, textHash)
}

// OpenAudio opens the stored audio stream for an asset
func (s *ServiceImpl) OpenAudio(ctx context.Context, asset *models.AudioAsset) (io.ReadCloser, error) {
	return s.storage.Open(ctx, asset.Path)
}

// CleanupOld removes audio assets not used within olderThanDays
func (s *ServiceImpl) CleanupOld(ctx context.Context, olderThanDays int) error {
	assets, err := s.repository.GetOlderThan(ctx, olderThanDays)
	if err != nil {
		return err
	}

	for _, asset := range assets {
		if err := s.storage.Delete(ctx, asset.Path); err != nil {
			log.Printf("[WARN] Failed to delete audio file %s: %v", asset.Path, err)
		}
		if err := s.repository.Delete(ctx, asset.ID); err != nil {
			log.Printf("[WARN] Failed to delete asset row %d: %v", asset.ID, err)
		} else {
			log.Printf("[INFO] Deleted audio asset %d", asset.ID)
		}
	}

	return nil
}
