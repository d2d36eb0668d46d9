package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Narrative used for categories that texts_by_category.json does not describe.
const (
	FallbackGeneralInfo             = "Объектом расчета является изделие"
	FallbackConstructionDescription = "Конструкция представляет собой изделие"
	FallbackConclusion              = "По результатам расчета установлено"
)

// Texts maps a product category to its narrative blocks.
// Lookups are case-insensitive because viper folds keys on load.
type Texts struct {
	byCategory map[string]CategoryTexts
}

// NewTexts builds a Texts lookup from a category → blocks mapping.
func NewTexts(raw map[string]CategoryTexts) Texts {
	t := Texts{byCategory: make(map[string]CategoryTexts, len(raw))}
	for category, blocks := range raw {
		t.byCategory[FoldKey(category)] = blocks
	}
	return t
}

// For returns the narrative blocks of a category. Unknown categories get the
// fallback triple; missing blocks of a known category are left empty.
func (t Texts) For(category string) CategoryTexts {
	if blocks, ok := t.byCategory[FoldKey(category)]; ok {
		return blocks
	}
	return CategoryTexts{
		GeneralInfo:             FallbackGeneralInfo,
		ConstructionDescription: FallbackConstructionDescription,
		Conclusion:              FallbackConclusion,
	}
}

// Len returns the number of described categories.
func (t Texts) Len() int {
	return len(t.byCategory)
}

// FoldKey normalizes a label for case-insensitive comparison of Cyrillic text.
func FoldKey(s string) string {
	return cases.Lower(language.Russian).String(norm.NFC.String(strings.TrimSpace(s)))
}
