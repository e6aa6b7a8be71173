package generator

import (
	"fmt"
	"strings"

	"ecotourism-workers/internal/models"
	"ecotourism-workers/internal/translator/sparql"
	"ecotourism-workers/internal/vocabulary"
)

// BuildPrompt describes the ontology, the allowed values and the output
// rules, followed by the user's question.
func BuildPrompt(question, namespace string, vocab *vocabulary.Vocabulary) string {
	if namespace == "" {
		namespace = sparql.DefaultNamespace
	}

	var parts []string
	parts = append(parts, "You are a SPARQL expert for an eco-tourism knowledge base.")
	parts = append(parts, fmt.Sprintf("The ontology namespace is <%s>.", namespace))

	parts = append(parts, "\nAVAILABLE ENTITIES AND ATTRIBUTES:")
	for i, entity := range sparql.Catalog() {
		parts = append(parts, fmt.Sprintf("%d. %s (types: %s)", i+1, entity.Domain, strings.Join(entity.Types, ", ")))
		parts = append(parts, fmt.Sprintf("   attributes: %s", strings.Join(entity.Attributes, ", ")))
	}

	parts = append(parts, "\nVALID VALUES:")
	parts = append(parts, fmt.Sprintf("- difficultyLevel: %s", strings.Join(vocab.DifficultyTable().Canonicals(), ", ")))
	parts = append(parts, fmt.Sprintf("- season: %s", strings.Join(vocab.SeasonTable().Canonicals(), ", ")))
	for _, category := range models.AllCategories {
		parts = append(parts, fmt.Sprintf("- %s: %s", category, strings.Join(vocab.EntityTable(category).Canonicals(), ", ")))
	}

	parts = append(parts, "\nSTRICT RULES:")
	parts = append(parts, "1. Use ONLY the attributes listed above.")
	parts = append(parts, "2. Always declare PREFIX eco: and PREFIX rdf:.")
	parts = append(parts, "3. Use OPTIONAL for attributes that are not required.")
	parts = append(parts, "4. Use FILTER for conditions such as price or rating.")
	parts = append(parts, fmt.Sprintf("5. Limit results with LIMIT %d.", sparql.ResultLimit))
	parts = append(parts, "6. Use only the valid values listed above.")

	parts = append(parts, "\nOUTPUT FORMAT:")
	parts = append(parts, strings.TrimRight(sparql.Prefixes(namespace), "\n"))
	parts = append(parts, `
SELECT ?var1 ?var2
WHERE {
    ?entity a eco:EntityType .
    ?entity eco:property ?var1 .
    OPTIONAL { ?entity eco:optionalProperty ?var2 }
    FILTER(?condition)
}
ORDER BY ?var1
LIMIT 20`)

	parts = append(parts, fmt.Sprintf("\nUser question: %q", question))
	parts = append(parts, "\nGenerate ONLY the SPARQL query, without explanation or additional text.")

	return strings.Join(parts, "\n")
}
