package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ecotourism-workers/internal/translator/sparql"
	"ecotourism-workers/internal/vocabulary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textFunc adapts a function to TextGenerator.
type textFunc func(ctx context.Context, prompt string) (string, error)

func (f textFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func reply(text string, err error) textFunc {
	return func(context.Context, string) (string, error) { return text, err }
}

const validQuery = "PREFIX eco: <http://www.ecotourism.org/ontology#>\nSELECT ?a WHERE { ?a a eco:Hotel . }"

// ==========================
// Generate
// ==========================

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name      string
		client    TextGenerator
		wantErr   error
		wantQuery string
	}{
		{
			name:      "valid query",
			client:    reply(validQuery, nil),
			wantQuery: validQuery,
		},
		{
			name:      "fenced select gets prefixes",
			client:    reply("```sparql\nSELECT ?a WHERE { ?a ?b ?c }\n```", nil),
			wantQuery: sparql.Prefixes(sparql.DefaultNamespace) + "\nSELECT ?a WHERE { ?a ?b ?c }",
		},
		{
			name:    "call error",
			client:  reply("", errors.New("connection refused")),
			wantErr: ErrTransport,
		},
		{
			name:    "empty text",
			client:  reply("  \n ", nil),
			wantErr: ErrTransport,
		},
		{
			name:    "prose instead of query",
			client:  reply("Sorry, I cannot help with that.", nil),
			wantErr: ErrValidation,
		},
		{
			name:    "unbalanced braces",
			client:  reply("SELECT ?a WHERE { ?a ?b ?c", nil),
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.client, vocabulary.Default(), "", 0)

			query, err := g.Generate(context.Background(), "any question")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, query)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
		})
	}
}

func TestGenerator_TransportAndValidationAreDistinct(t *testing.T) {
	g := New(reply("", errors.New("boom")), vocabulary.Default(), "", 0)
	_, err := g.Generate(context.Background(), "q")
	assert.False(t, errors.Is(err, ErrValidation))

	g = New(reply("nope", nil), vocabulary.Default(), "", 0)
	_, err = g.Generate(context.Background(), "q")
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestGenerator_PerCallTimeout(t *testing.T) {
	slow := textFunc(func(ctx context.Context, prompt string) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(2 * time.Second):
			return validQuery, nil
		}
	})
	g := New(slow, vocabulary.Default(), "", 20*time.Millisecond)

	start := time.Now()
	_, err := g.Generate(context.Background(), "q")

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorContains(t, err, context.DeadlineExceeded.Error())
	assert.Less(t, time.Since(start), time.Second)
}

func TestGenerator_SendsPrompt(t *testing.T) {
	var got string
	g := New(textFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return validQuery, nil
	}), vocabulary.Default(), "http://example.org/eco#", 0)

	_, err := g.Generate(context.Background(), "Easy hikes in summer")
	require.NoError(t, err)
	assert.Contains(t, got, `User question: "Easy hikes in summer"`)
	assert.Contains(t, got, "<http://example.org/eco#>")
}

// ==========================
// Prompt
// ==========================

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(`Où dormir "pas cher" ?`, "", vocabulary.Default())

	assert.Contains(t, prompt, "<"+sparql.DefaultNamespace+">")
	assert.Contains(t, prompt, "1. activities (types: AdventureActivity, CulturalActivity, NatureActivity)")
	assert.Contains(t, prompt, "6. products (types: LocalProduct)")
	assert.Contains(t, prompt, "measurementUnit")
	assert.Contains(t, prompt, "- difficultyLevel: Easy, Moderate, Difficult")
	assert.Contains(t, prompt, "- season: Spring, Summer, Autumn, Winter")
	assert.Contains(t, prompt, "- accommodation_type: EcoLodge, GuestHouse, Hotel")
	assert.Contains(t, prompt, "LIMIT 20")
	assert.Contains(t, prompt, `User question: "Où dormir \"pas cher\" ?"`)
	assert.True(t, strings.HasSuffix(prompt, "Generate ONLY the SPARQL query, without explanation or additional text."))
}

// ==========================
// Clean
// ==========================

func TestClean(t *testing.T) {
	prefixes := sparql.Prefixes(sparql.DefaultNamespace)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already clean",
			input:    validQuery,
			expected: validQuery,
		},
		{
			name:     "fence with prose around it",
			input:    "Here you go:\n```sparql\n" + validQuery + "\n```\nEnjoy!",
			expected: validQuery,
		},
		{
			name:     "stray fence",
			input:    "```\n" + validQuery,
			expected: validQuery,
		},
		{
			name:     "typographic quotes",
			input:    "SELECT ?a WHERE { ?a eco:seasonName “Summer” . ?a eco:x ‘y’ }",
			expected: prefixes + "\nSELECT ?a WHERE { ?a eco:seasonName \"Summer\" . ?a eco:x 'y' }",
		},
		{
			name:     "apostrophe inside a literal keeps the literal intact",
			input:    "PREFIX eco: <x> SELECT ?a WHERE { ?a eco:name “L’Oasis” }",
			expected: "PREFIX eco: <x> SELECT ?a WHERE { ?a eco:name \"L'Oasis\" }",
		},
		{
			name:     "guillemets",
			input:    "PREFIX eco: <x> SELECT ?a WHERE { ?a eco:name «Gîte» }",
			expected: "PREFIX eco: <x> SELECT ?a WHERE { ?a eco:name \"Gîte\" }",
		},
		{
			name:     "lowercase select is completed",
			input:    "  select ?a where { ?a ?b ?c }  ",
			expected: prefixes + "\nselect ?a where { ?a ?b ?c }",
		},
		{
			name:     "prose is left for validation to reject",
			input:    "I think the answer is SELECT",
			expected: "I think the answer is SELECT",
		},
		{
			name:     "decomposed accents are composed",
			input:    "PREFIX eco: <x> SELECT ?a WHERE { ?a eco:name \"Ge\u0302te\" }",
			expected: "PREFIX eco: <x> SELECT ?a WHERE { ?a eco:name \"G\u00eate\" }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input, ""))
		})
	}
}
