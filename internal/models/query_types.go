// internal/models/query_types.go
package models

import (
	"math"
	"sort"
)

// QueryDomain is the single domain a question is routed to.
type QueryDomain string

const (
	DomainActivities     QueryDomain = "activities"
	DomainAccommodations QueryDomain = "accommodations"
	DomainTransport      QueryDomain = "transport"
	DomainSeasons        QueryDomain = "seasons"
	DomainSustainability QueryDomain = "sustainability"
	DomainProducts       QueryDomain = "products"
	DomainRecommendation QueryDomain = "recommendation"
	DomainGenericSearch  QueryDomain = "search"
)

// AllDomains lists every domain in classifier priority order, GenericSearch last.
var AllDomains = []QueryDomain{
	DomainActivities,
	DomainAccommodations,
	DomainTransport,
	DomainSeasons,
	DomainSustainability,
	DomainProducts,
	DomainRecommendation,
	DomainGenericSearch,
}

// IsValid reports whether d is one of the known domains.
func (d QueryDomain) IsValid() bool {
	for _, known := range AllDomains {
		if d == known {
			return true
		}
	}
	return false
}

// EntityCategory groups canonical entity tags.
type EntityCategory string

const (
	CategoryActivityType      EntityCategory = "activity_type"
	CategoryAccommodationType EntityCategory = "accommodation_type"
	CategoryTransportType     EntityCategory = "transport_type"
)

// AllCategories is the extraction order for entity categories.
var AllCategories = []EntityCategory{
	CategoryActivityType,
	CategoryAccommodationType,
	CategoryTransportType,
}

// EntityTag is a canonical value detected in a question.
type EntityTag struct {
	Category EntityCategory `json:"type"`
	Value    string         `json:"value"`
	Surface  string         `json:"original,omitempty"`
}

// Entities is the ordered set of detected tags, at most one per category.
type Entities []EntityTag

// Get returns the canonical value for a category.
func (e Entities) Get(category EntityCategory) (string, bool) {
	for _, tag := range e {
		if tag.Category == category {
			return tag.Value, true
		}
	}
	return "", false
}

// Filter keys recognised by the extractor and the synthesizer.
const (
	FilterDifficulty       = "difficulty"
	FilterSeason           = "season"
	FilterMaxPrice         = "max_price"
	FilterMinCapacity      = "min_capacity"
	FilterEcoFriendly      = "eco_friendly"
	FilterHighRating       = "high_rating"
	FilterHasSwimmingPool  = "hasSwimmingPool"
	FilterHasSpa           = "hasSpa"
	FilterHasRestaurant    = "hasRestaurant"
	FilterWifiAvailable    = "wifiAvailable"
	FilterParkingAvailable = "parkingAvailable"
)

// FilterMap maps a filter key to a string, integer or boolean constraint.
// A missing key means the attribute is unconstrained.
type FilterMap map[string]interface{}

// String returns the string value stored under key.
func (f FilterMap) String(key string) (string, bool) {
	v, ok := f[key].(string)
	return v, ok && v != ""
}

// Int returns the integer value stored under key. Whole float64 values that
// fit in an int are accepted since job variables arrive JSON-decoded.
func (f FilterMap) Int(key string) (int, bool) {
	switch v := f[key].(type) {
	case int:
		return v, true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		// float64(math.MaxInt) rounds up, so the upper bound is exclusive.
		if v == math.Trunc(v) && v >= float64(math.MinInt) && v < -float64(math.MinInt) {
			return int(v), true
		}
	}
	return 0, false
}

// Flag reports whether key is set to true.
func (f FilterMap) Flag(key string) bool {
	v, ok := f[key].(bool)
	return ok && v
}

// Keys returns the filter keys in sorted order.
func (f FilterMap) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Source identifies which path produced a query.
type Source string

const (
	SourceDeterministic Source = "deterministic"
	SourceAIAssisted    Source = "ai-assisted"
)

// PipelineResult is the single outcome of translating one question.
type PipelineResult struct {
	RequestID      string      `json:"requestId"`
	Question       string      `json:"question"`
	Domain         QueryDomain `json:"domain"`
	Entities       Entities    `json:"entities"`
	Filters        FilterMap   `json:"filters"`
	Query          string      `json:"query"`
	Confidence     float64     `json:"confidence"`
	Source         Source      `json:"source"`
	Attempts       int         `json:"attempts"`
	FallbackReason string      `json:"fallbackReason,omitempty"`
}
