// pkg/registry/schema.go
package registry

// Synonym maps one surface form to its canonical tag or filter key.
type Synonym struct {
	Surface   string `json:"surface"`
	Canonical string `json:"canonical"`
}

// VocabularyDocument is the editable, on-disk form of the controlled vocabulary.
// Every list is ordered: lookups take the first matching entry.
type VocabularyDocument struct {
	Version          string               `json:"version"`
	LastUpdated      string               `json:"lastUpdated"`
	Difficulty       []Synonym            `json:"difficulty"`
	Season           []Synonym            `json:"season"`
	Entities         map[string][]Synonym `json:"entities"`
	Amenities        []Synonym            `json:"amenities"`
	DomainKeywords   map[string][]string  `json:"domainKeywords"`
	EcoKeywords      []string             `json:"ecoKeywords"`
	RatingKeywords   []string             `json:"ratingKeywords"`
	PricePatterns    []string             `json:"pricePatterns"`
	CapacityPatterns []string             `json:"capacityPatterns"`
}

// DocumentSchema is the JSON schema every vocabulary document must satisfy.
const DocumentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"definitions": {
		"synonyms": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"surface": {"type": "string", "minLength": 1},
					"canonical": {"type": "string", "minLength": 1}
				},
				"required": ["surface", "canonical"]
			}
		},
		"keywords": {
			"type": "array",
			"items": {"type": "string", "minLength": 1}
		}
	},
	"properties": {
		"version": {"type": "string"},
		"lastUpdated": {"type": "string"},
		"difficulty": {"$ref": "#/definitions/synonyms"},
		"season": {"$ref": "#/definitions/synonyms"},
		"entities": {
			"type": "object",
			"properties": {
				"activity_type": {"$ref": "#/definitions/synonyms"},
				"accommodation_type": {"$ref": "#/definitions/synonyms"},
				"transport_type": {"$ref": "#/definitions/synonyms"}
			},
			"required": ["activity_type", "accommodation_type", "transport_type"],
			"additionalProperties": false
		},
		"amenities": {"$ref": "#/definitions/synonyms"},
		"domainKeywords": {
			"type": "object",
			"additionalProperties": {"$ref": "#/definitions/keywords"}
		},
		"ecoKeywords": {"$ref": "#/definitions/keywords"},
		"ratingKeywords": {"$ref": "#/definitions/keywords"},
		"pricePatterns": {"$ref": "#/definitions/keywords"},
		"capacityPatterns": {"$ref": "#/definitions/keywords"}
	},
	"required": ["difficulty", "season", "entities", "amenities", "domainKeywords",
		"ecoKeywords", "ratingKeywords", "pricePatterns", "capacityPatterns"]
}`
