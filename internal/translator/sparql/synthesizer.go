// Package sparql renders deterministic SPARQL queries from a classified
// question and checks the structure of query text.
package sparql

import (
	"fmt"
	"regexp"
	"strings"

	"ecotourism-workers/internal/models"
	"ecotourism-workers/internal/vocabulary"
)

// DefaultNamespace is the ontology namespace bound to the eco: prefix.
const DefaultNamespace = "http://www.ecotourism.org/ontology#"

const rdfNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

var literalPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _-]*$`)

func safeLiteral(v string) bool {
	return literalPattern.MatchString(v)
}

// Prefixes returns the PREFIX declarations every query starts with.
func Prefixes(namespace string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return fmt.Sprintf("PREFIX eco: <%s>\nPREFIX rdf: <%s>\n", namespace, rdfNamespace)
}

// Synthesizer builds queries from templates. It holds no per-request state
// and is safe for concurrent use.
type Synthesizer struct {
	prefixes string
	allowed  map[string]map[string]bool
}

func NewSynthesizer(namespace string, vocab *vocabulary.Vocabulary) *Synthesizer {
	return &Synthesizer{
		prefixes: Prefixes(namespace),
		allowed: map[string]map[string]bool{
			models.FilterDifficulty: toSet(vocab.DifficultyTable().Canonicals()),
			models.FilterSeason:     toSet(vocab.SeasonTable().Canonicals()),
		},
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Synthesize always returns a well-formed query. Only typed filter values and
// known class names are written into the query body.
func (s *Synthesizer) Synthesize(domain models.QueryDomain, entities models.Entities, filters models.FilterMap) string {
	t := TemplateFor(domain)
	v := "?" + t.Subject

	var b strings.Builder
	b.WriteString(s.prefixes)
	b.WriteString("\nSELECT DISTINCT ")
	b.WriteString(v)
	for _, attr := range t.Attributes() {
		b.WriteString(" ?")
		b.WriteString(attr)
	}
	b.WriteString("\nWHERE {\n")

	types := narrow(t, entities)
	if len(types) == 1 {
		fmt.Fprintf(&b, "    %s a eco:%s .\n", v, types[0])
	} else {
		for i, typ := range types {
			if i == 0 {
				b.WriteString("    {\n")
			} else {
				b.WriteString("    } UNION {\n")
			}
			fmt.Fprintf(&b, "        %s a eco:%s .\n", v, typ)
		}
		b.WriteString("    }\n")
	}

	for _, attr := range t.Required {
		fmt.Fprintf(&b, "    %s eco:%s ?%s .\n", v, attr, attr)
	}
	for _, attr := range t.Optional {
		fmt.Fprintf(&b, "    OPTIONAL { %s eco:%s ?%s }\n", v, attr, attr)
	}

	if clause := s.filterClause(t, filters); clause != "" {
		b.WriteString("    ")
		b.WriteString(clause)
		b.WriteString("\n")
	}

	b.WriteString("}\n")
	fmt.Fprintf(&b, "ORDER BY %s\n", t.OrderBy)
	fmt.Fprintf(&b, "LIMIT %d\n", ResultLimit)
	return b.String()
}

// narrow returns the single entity class when a detected entity belongs to
// the template, otherwise all of the template's classes.
func narrow(t *Template, entities models.Entities) []string {
	if t.Category == "" {
		return t.Types
	}
	value, ok := entities.Get(t.Category)
	if !ok {
		return t.Types
	}
	for _, typ := range t.Types {
		if typ == value {
			return []string{typ}
		}
	}
	return t.Types
}

func (s *Synthesizer) filterClause(t *Template, filters models.FilterMap) string {
	if len(filters) == 0 {
		return ""
	}
	in := input{filters: filters, allowed: s.allowed}
	var exprs []string
	for _, p := range t.Predicates {
		if expr, ok := p(in); ok {
			exprs = append(exprs, expr)
		}
	}
	if len(exprs) == 0 {
		return ""
	}
	return "FILTER(" + strings.Join(exprs, " && ") + ")"
}
