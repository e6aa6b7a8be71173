// Package extract pulls canonical entity tags and typed filter constraints
// out of a normalized question.
package extract

import (
	"ecotourism-workers/internal/models"
	"ecotourism-workers/internal/vocabulary"
)

type EntityExtractor struct {
	vocab *vocabulary.Vocabulary
}

func NewEntityExtractor(vocab *vocabulary.Vocabulary) *EntityExtractor {
	return &EntityExtractor{vocab: vocab}
}

// Extract returns at most one tag per category. Within a category the
// earliest synonym table entry that occurs in the text wins. With no
// categories given, all of them are scanned.
func (e *EntityExtractor) Extract(normalized string, categories ...models.EntityCategory) models.Entities {
	if len(categories) == 0 {
		categories = models.AllCategories
	}

	entities := models.Entities{}
	for _, category := range categories {
		match, ok := e.vocab.EntityTable(category).Match(normalized)
		if !ok {
			continue
		}
		entities = append(entities, models.EntityTag{
			Category: category,
			Value:    match.Canonical,
			Surface:  match.Surface,
		})
	}
	return entities
}
