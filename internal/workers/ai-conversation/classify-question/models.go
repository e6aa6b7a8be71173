// internal/workers/ai-conversation/classify-question/models.go
package classifyquestion

import "ecotourism-workers/internal/models"

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Domain   models.QueryDomain `json:"domain"`
	Entities models.Entities    `json:"entities"`
	Filters  models.FilterMap   `json:"filters"`
}

const inputSchema = `{
	"type": "object",
	"required": ["question"],
	"properties": {
		"question": {"type": "string", "maxLength": 4000}
	}
}`
