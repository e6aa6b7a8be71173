package extract

import (
	"regexp"
	"strconv"
	"strings"

	"ecotourism-workers/internal/models"
	"ecotourism-workers/internal/vocabulary"
)

type FilterExtractor struct {
	vocab *vocabulary.Vocabulary
}

func NewFilterExtractor(vocab *vocabulary.Vocabulary) *FilterExtractor {
	return &FilterExtractor{vocab: vocab}
}

// Extract builds the filter map for a normalized question. Each filter type
// is detected independently; amenity flags are only ever set to true.
func (f *FilterExtractor) Extract(normalized string) models.FilterMap {
	filters := models.FilterMap{}

	if match, ok := f.vocab.DifficultyTable().Match(normalized); ok {
		filters[models.FilterDifficulty] = match.Canonical
	}
	if match, ok := f.vocab.SeasonTable().Match(normalized); ok {
		filters[models.FilterSeason] = match.Canonical
	}

	if price, ok := firstNumber(f.vocab.PricePatterns(), normalized); ok {
		filters[models.FilterMaxPrice] = price
	}

	if vocabulary.ContainsAny(normalized, f.vocab.EcoKeywords()) {
		filters[models.FilterEcoFriendly] = true
	}
	if vocabulary.ContainsAny(normalized, f.vocab.RatingKeywords()) {
		filters[models.FilterHighRating] = true
	}

	if capacity, ok := firstNumber(f.vocab.CapacityPatterns(), normalized); ok {
		filters[models.FilterMinCapacity] = capacity
	}

	for _, amenity := range f.vocab.AmenityTable() {
		if strings.Contains(normalized, amenity.Surface) {
			filters[amenity.Canonical] = true
		}
	}

	return filters
}

// firstNumber returns the first capture of the first pattern that matches.
// A capture too large for an int does not count as a match.
func firstNumber(patterns []*regexp.Regexp, text string) (int, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}
