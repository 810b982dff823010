package models

import (
	"strings"

	"gorm.io/gorm"
)

// Language is a supported language code
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSwahili Language = "sw"
	LanguageFrench  Language = "fr"
)

// SupportedLanguages maps language codes to display names.
// English is the canonical source language of the scraped docs.
var SupportedLanguages = map[Language]string{
	LanguageEnglish: "English",
	LanguageSwahili: "Swahili",
	LanguageFrench:  "French",
}

// IsSupportedLanguage reports whether code is one of the fixed language set
func IsSupportedLanguage(code string) bool {
	_, ok := SupportedLanguages[Language(code)]
	return ok
}

// LanguageByName resolves a spoken/display language name ("french") to its code
func LanguageByName(name string) (Language, bool) {
	for code, display := range SupportedLanguages {
		if strings.EqualFold(display, name) {
			return code, true
		}
	}
	return "", false
}

// Translation is a language-specific text variant of a Section.
// At most one row exists per (SectionID, Language); SourceHash records the
// section content hash at translation time so stale rows can be invalidated.
type Translation struct {
	gorm.Model
	SectionID  uint     `json:"section_id" gorm:"not null;index;uniqueIndex:idx_translations_section_lang"`
	Language   Language `json:"language" gorm:"size:5;not null;uniqueIndex:idx_translations_section_lang"`
	Body       string   `json:"body" gorm:"type:text"`
	SourceHash string   `json:"source_hash" gorm:"size:64"`
}
