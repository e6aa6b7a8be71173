package pipeline

import (
	"math"
	"strings"

	"ecotourism-workers/internal/models"
)

// Score is 0.5 plus 0.15 for detected entities, 0.15 for filters and 0.2
// when a recognised domain produced a SELECT query, capped at 1.
func Score(domain models.QueryDomain, entities models.Entities, filters models.FilterMap, query string) float64 {
	score := 0.5
	if len(entities) > 0 {
		score += 0.15
	}
	if len(filters) > 0 {
		score += 0.15
	}
	if domain != models.DomainGenericSearch && strings.Contains(strings.ToUpper(query), "SELECT") {
		score += 0.2
	}
	return math.Round(math.Min(score, 1.0)*100) / 100
}
