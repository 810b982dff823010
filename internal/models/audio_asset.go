package models

import (
	"time"

	"gorm.io/gorm"
)

// AudioAsset represents synthesized speech stored for a (text, language) pair.
// TextHash is the sha256 of the spoken text plus the language code, so an
// asset is generated at most once until the underlying text changes.
type AudioAsset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TextHash   string    `gorm:"size:64;uniqueIndex;not null" json:"text_hash"`
	Language   Language  `gorm:"size:5;not null" json:"language"`
	Path       string    `gorm:"not null" json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	LastUsedAt time.Time `json:"last_used_at"`

	// Optional back-reference for assets generated from a stored section
	SectionID *uint `gorm:"index" json:"section_id,omitempty"`
}

// TableName returns the table name for the AudioAsset model
func (AudioAsset) TableName() string {
	return "audio_assets"
}

// BeforeCreate hook to set timestamps
func (a *AudioAsset) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.LastUsedAt = now
	return nil
}

// BeforeUpdate hook to update timestamp
func (a *AudioAsset) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}
