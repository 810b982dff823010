package models

import (
	"time"

	"gorm.io/gorm"
)

// ScrapeStatus records the outcome of the last scrape of a document
type ScrapeStatus string

const (
	ScrapeStatusOK        ScrapeStatus = "ok"
	ScrapeStatusUnchanged ScrapeStatus = "unchanged"
	ScrapeStatusFailed    ScrapeStatus = "failed"
)

// Document represents one scraped documentation page
type Document struct {
	gorm.Model
	SourceURL        string       `json:"source_url" gorm:"uniqueIndex;not null"`
	Title            string       `json:"title" gorm:"not null"`
	ContentHash      string       `json:"content_hash" gorm:"size:64;index"`
	ETag             string       `json:"etag"`
	LastFetchedAt    time.Time    `json:"last_fetched_at"`
	LastScrapeStatus ScrapeStatus `json:"last_scrape_status" gorm:"default:'ok'"`
	Sections         []Section    `json:"sections,omitempty" gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
}

// Section represents one heading-delimited content block within a Document.
// (DocumentID, Ordinal) is unique; sections belong to exactly one document and
// are replaced wholesale when the document is re-scraped.
type Section struct {
	gorm.Model
	DocumentID  uint   `json:"document_id" gorm:"not null;index;uniqueIndex:idx_sections_doc_ordinal"`
	Ordinal     int    `json:"ordinal" gorm:"not null;uniqueIndex:idx_sections_doc_ordinal"`
	Level       int    `json:"level" gorm:"not null"` // heading level 1..3
	Heading     string `json:"heading" gorm:"not null"`
	Body        string `json:"body" gorm:"type:text"`
	ContentHash string `json:"content_hash" gorm:"size:64;index"`

	Translations []Translation `json:"translations,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}
