// internal/workers/data-access/synthesize-sparql/models.go
package synthesizesparql

import (
	"strings"

	"ecotourism-workers/internal/models"
)

// Input mirrors the output of classify-question so the two tasks chain
// without a mapping step.
type Input struct {
	Domain   models.QueryDomain `json:"domain"`
	Entities models.Entities    `json:"entities"`
	Filters  models.FilterMap   `json:"filters"`
}

type Output struct {
	Domain      models.QueryDomain `json:"domain"`
	SparqlQuery string             `json:"sparqlQuery"`
}

func quoted(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = `"` + v + `"`
	}
	return strings.Join(out, ", ")
}

func domainNames() []string {
	out := make([]string, len(models.AllDomains))
	for i, d := range models.AllDomains {
		out[i] = string(d)
	}
	return out
}

func categoryNames() []string {
	out := make([]string, len(models.AllCategories))
	for i, c := range models.AllCategories {
		out[i] = string(c)
	}
	return out
}

var inputSchema = `{
	"type": "object",
	"required": ["domain"],
	"properties": {
		"domain": {"type": "string", "enum": [` + quoted(domainNames()) + `]},
		"entities": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"required": ["type", "value"],
				"properties": {
					"type": {"type": "string", "enum": [` + quoted(categoryNames()) + `]},
					"value": {"type": "string"},
					"original": {"type": "string"}
				}
			}
		},
		"filters": {
			"type": ["object", "null"],
			"additionalProperties": {"type": ["string", "number", "boolean"]}
		}
	}
}`
