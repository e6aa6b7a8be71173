// Package generator asks a generative text service for a SPARQL query and
// accepts the answer only when it is structurally sound.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecotourism-workers/internal/translator/sparql"
	"ecotourism-workers/internal/vocabulary"
)

var (
	// ErrTransport covers call errors, timeouts, bad statuses and empty text.
	ErrTransport = errors.New("GENAI_TRANSPORT_FAILED")
	// ErrValidation means text came back but is not a usable query.
	ErrValidation = errors.New("GENAI_VALIDATION_FAILED")
)

// TextGenerator is the external generative service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	client    TextGenerator
	vocab     *vocabulary.Vocabulary
	namespace string
	timeout   time.Duration
}

// New returns a Generator. A positive timeout bounds each call.
func New(client TextGenerator, vocab *vocabulary.Vocabulary, namespace string, timeout time.Duration) *Generator {
	if namespace == "" {
		namespace = sparql.DefaultNamespace
	}
	return &Generator{
		client:    client,
		vocab:     vocab,
		namespace: namespace,
		timeout:   timeout,
	}
}

// Generate makes exactly one call to the text service.
func (g *Generator) Generate(ctx context.Context, question string) (string, error) {
	prompt := BuildPrompt(question, g.namespace, g.vocab)

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.client.Generate(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrTransport)
	}

	query := Clean(text, g.namespace)
	if err := sparql.Validate(query); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return query, nil
}
