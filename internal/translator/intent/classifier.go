// Package intent routes a question to exactly one query domain.
package intent

import (
	"ecotourism-workers/internal/models"
	"ecotourism-workers/internal/vocabulary"
)

// priority is the tie-break order: a question hitting several keyword sets
// goes to the earliest domain listed here.
var priority = []models.QueryDomain{
	models.DomainActivities,
	models.DomainAccommodations,
	models.DomainTransport,
	models.DomainSeasons,
	models.DomainSustainability,
	models.DomainProducts,
	models.DomainRecommendation,
}

type Classifier struct {
	vocab *vocabulary.Vocabulary
}

func NewClassifier(vocab *vocabulary.Vocabulary) *Classifier {
	return &Classifier{vocab: vocab}
}

// Classify expects text already passed through vocabulary.Normalize.
func (c *Classifier) Classify(normalized string) models.QueryDomain {
	for _, domain := range priority {
		if vocabulary.ContainsAny(normalized, c.vocab.DomainKeywords(domain)) {
			return domain
		}
	}
	return models.DomainGenericSearch
}
