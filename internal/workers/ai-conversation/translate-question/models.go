// internal/workers/ai-conversation/translate-question/models.go
package translatequestion

import "ecotourism-workers/internal/models"

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	RequestID         string             `json:"requestId"`
	Question          string             `json:"question"`
	Domain            models.QueryDomain `json:"domain"`
	Entities          models.Entities    `json:"entities"`
	Filters           models.FilterMap   `json:"filters"`
	SparqlQuery       string             `json:"sparqlQuery"`
	Confidence        float64            `json:"confidence"`
	Source            models.Source      `json:"source"`
	Attempts          int                `json:"attempts"`
	FallbackReason    string             `json:"fallbackReason,omitempty"`
	FallbackErrorCode string             `json:"fallbackErrorCode,omitempty"`
}

const inputSchema = `{
	"type": "object",
	"required": ["question"],
	"properties": {
		"question": {
			"type": "string",
			"maxLength": 4000,
			"description": "Natural-language question in French or English"
		}
	}
}`
