// Package vocabulary holds the controlled bilingual vocabulary shared by the
// classifier, the extractors and the AI prompt builder.
//
// A Vocabulary is built once at start-up and never mutated afterwards, so a
// single instance may be shared by any number of concurrent translations.
package vocabulary

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ecotourism-workers/internal/models"
	"ecotourism-workers/pkg/registry"

	"golang.org/x/text/unicode/norm"
)

var ErrInvalidVocabulary = errors.New("invalid vocabulary")

var amenityKeys = map[string]bool{
	models.FilterHasSwimmingPool:  true,
	models.FilterHasSpa:           true,
	models.FilterHasRestaurant:    true,
	models.FilterWifiAvailable:    true,
	models.FilterParkingAvailable: true,
}

// Normalize applies canonical composition and lower-casing for matching.
func Normalize(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

// ContainsAny reports whether text contains at least one keyword.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Table is an ordered surface-form to canonical mapping.
type Table []registry.Synonym

// Match returns the first entry whose surface form occurs in text.
func (t Table) Match(text string) (registry.Synonym, bool) {
	for _, s := range t {
		if strings.Contains(text, s.Surface) {
			return s, true
		}
	}
	return registry.Synonym{}, false
}

// Canonicals returns the distinct canonical values in first-seen order.
func (t Table) Canonicals() []string {
	seen := make(map[string]bool, len(t))
	var out []string
	for _, s := range t {
		if !seen[s.Canonical] {
			seen[s.Canonical] = true
			out = append(out, s.Canonical)
		}
	}
	return out
}

// Vocabulary is the compiled, read-only form of a registry.VocabularyDocument.
type Vocabulary struct {
	version          string
	difficulty       Table
	season           Table
	entities         map[models.EntityCategory]Table
	amenities        Table
	domainKeywords   map[models.QueryDomain][]string
	ecoKeywords      []string
	ratingKeywords   []string
	pricePatterns    []*regexp.Regexp
	capacityPatterns []*regexp.Regexp
}

// Default compiles the built-in vocabulary.
func Default() *Vocabulary {
	v, err := New(DefaultDocument())
	if err != nil {
		panic(fmt.Sprintf("built-in vocabulary: %v", err))
	}
	return v
}

// Load compiles the vocabulary document at path, or the built-in one when
// path is empty.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}
	doc, err := registry.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}
	return New(doc)
}

// New compiles doc. Surface forms and keywords are normalized the same way
// questions are, so a document saved in decomposed form still matches.
func New(doc *registry.VocabularyDocument) (*Vocabulary, error) {
	v := &Vocabulary{
		version:        doc.Version,
		difficulty:     normalizeTable(doc.Difficulty),
		season:         normalizeTable(doc.Season),
		amenities:      normalizeTable(doc.Amenities),
		entities:       make(map[models.EntityCategory]Table, len(models.AllCategories)),
		domainKeywords: make(map[models.QueryDomain][]string, len(doc.DomainKeywords)),
		ecoKeywords:    normalizeKeywords(doc.EcoKeywords),
		ratingKeywords: normalizeKeywords(doc.RatingKeywords),
	}

	for name, table := range doc.Entities {
		category := models.EntityCategory(name)
		if !isCategory(category) {
			return nil, fmt.Errorf("%w: unknown entity category %q", ErrInvalidVocabulary, name)
		}
		v.entities[category] = normalizeTable(table)
	}

	for name, keywords := range doc.DomainKeywords {
		domain := models.QueryDomain(name)
		if !domain.IsValid() || domain == models.DomainGenericSearch {
			return nil, fmt.Errorf("%w: unknown keyword domain %q", ErrInvalidVocabulary, name)
		}
		v.domainKeywords[domain] = normalizeKeywords(keywords)
	}

	for _, s := range v.amenities {
		if !amenityKeys[s.Canonical] {
			return nil, fmt.Errorf("%w: unknown amenity flag %q", ErrInvalidVocabulary, s.Canonical)
		}
	}

	var err error
	if v.pricePatterns, err = compilePatterns(doc.PricePatterns); err != nil {
		return nil, err
	}
	if v.capacityPatterns, err = compilePatterns(doc.CapacityPatterns); err != nil {
		return nil, err
	}
	return v, nil
}

func isCategory(c models.EntityCategory) bool {
	for _, known := range models.AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

func normalizeTable(in []registry.Synonym) Table {
	out := make(Table, 0, len(in))
	for _, s := range in {
		out = append(out, registry.Synonym{Surface: Normalize(s.Surface), Canonical: s.Canonical})
	}
	return out
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, kw := range in {
		out = append(out, Normalize(kw))
	}
	return out
}

func compilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidVocabulary, expr, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("%w: pattern %q has no capture group", ErrInvalidVocabulary, expr)
		}
		out = append(out, re)
	}
	return out, nil
}

func (v *Vocabulary) Version() string { return v.version }

// DomainKeywords returns the keyword set tested for domain.
func (v *Vocabulary) DomainKeywords(domain models.QueryDomain) []string {
	return v.domainKeywords[domain]
}

// EntityTable returns the synonym table for an entity category.
func (v *Vocabulary) EntityTable(category models.EntityCategory) Table {
	return v.entities[category]
}

func (v *Vocabulary) DifficultyTable() Table { return v.difficulty }
func (v *Vocabulary) SeasonTable() Table     { return v.season }
func (v *Vocabulary) AmenityTable() Table    { return v.amenities }
func (v *Vocabulary) EcoKeywords() []string  { return v.ecoKeywords }

func (v *Vocabulary) RatingKeywords() []string { return v.ratingKeywords }

// PricePatterns are tried in order; the first capture of the first match is the ceiling.
func (v *Vocabulary) PricePatterns() []*regexp.Regexp { return v.pricePatterns }

// CapacityPatterns are tried in order; the first capture of the first match is the floor.
func (v *Vocabulary) CapacityPatterns() []*regexp.Regexp { return v.capacityPatterns }

// Document rebuilds an editable document from the compiled vocabulary.
func (v *Vocabulary) Document() *registry.VocabularyDocument {
	doc := &registry.VocabularyDocument{
		Version:        v.version,
		Difficulty:     append([]registry.Synonym(nil), v.difficulty...),
		Season:         append([]registry.Synonym(nil), v.season...),
		Amenities:      append([]registry.Synonym(nil), v.amenities...),
		Entities:       make(map[string][]registry.Synonym, len(v.entities)),
		DomainKeywords: make(map[string][]string, len(v.domainKeywords)),
		EcoKeywords:    append([]string(nil), v.ecoKeywords...),
		RatingKeywords: append([]string(nil), v.ratingKeywords...),
	}
	for c, t := range v.entities {
		doc.Entities[string(c)] = append([]registry.Synonym(nil), t...)
	}
	for d, kws := range v.domainKeywords {
		doc.DomainKeywords[string(d)] = append([]string(nil), kws...)
	}
	for _, re := range v.pricePatterns {
		doc.PricePatterns = append(doc.PricePatterns, re.String())
	}
	for _, re := range v.capacityPatterns {
		doc.CapacityPatterns = append(doc.CapacityPatterns, re.String())
	}
	return doc
}
