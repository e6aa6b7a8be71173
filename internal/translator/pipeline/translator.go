// Package pipeline turns a question into exactly one query. It tries the
// generative path with bounded retries and always falls back to template
// synthesis, so Translate never fails.
package pipeline

import (
	"context"
	"errors"
	"time"

	"ecotourism-workers/internal/common/logger"
	"ecotourism-workers/internal/common/metrics"
	"ecotourism-workers/internal/models"
	"ecotourism-workers/internal/translator/extract"
	"ecotourism-workers/internal/translator/generator"
	"ecotourism-workers/internal/translator/intent"
	"ecotourism-workers/internal/translator/sparql"
	"ecotourism-workers/internal/vocabulary"

	"github.com/google/uuid"
)

// Fallback reasons reported on PipelineResult.
const (
	ReasonDisabled         = "ai_disabled"
	ReasonValidation       = "validation"
	ReasonRetriesExhausted = "retries_exhausted"
	ReasonDeadline         = "deadline"
)

// QueryGenerator produces a validated query from a question in one call.
// generator.Generator is the production implementation.
type QueryGenerator interface {
	Generate(ctx context.Context, question string) (string, error)
}

// DefaultMaxDelay caps a single backoff wait when RetryPolicy.MaxDelay is unset.
const DefaultMaxDelay = 30 * time.Second

// RetryPolicy bounds the generative attempts. After the k-th transport
// failure the orchestrator waits BaseDelay * 2^(k-1), at most MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: DefaultMaxDelay}
}

// Backoff returns the wait after the given number of transport failures.
func (p RetryPolicy) Backoff(failures int) time.Duration {
	if failures < 1 || p.BaseDelay <= 0 {
		return 0
	}
	limit := p.MaxDelay
	if limit <= 0 {
		limit = DefaultMaxDelay
	}

	delay := p.BaseDelay
	for i := 1; i < failures; i++ {
		if delay >= limit/2 {
			return limit
		}
		delay *= 2
	}
	return min(delay, limit)
}

type Option func(*Translator)

// WithGenerator enables the generative path. Without it every question is
// answered by template synthesis.
func WithGenerator(g QueryGenerator) Option {
	return func(t *Translator) { t.ai = g }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(t *Translator) {
		if p.MaxAttempts > 0 {
			t.retry.MaxAttempts = p.MaxAttempts
		}
		if p.BaseDelay >= 0 {
			t.retry.BaseDelay = p.BaseDelay
		}
		if p.MaxDelay > 0 {
			t.retry.MaxDelay = p.MaxDelay
		}
	}
}

func WithSleeper(s Sleeper) Option {
	return func(t *Translator) { t.sleeper = s }
}

func WithLogger(l logger.Logger) Option {
	return func(t *Translator) { t.logger = l }
}

// Translator is safe for concurrent use; all per-request state lives on
// the stack of Translate.
type Translator struct {
	classifier *intent.Classifier
	entities   *extract.EntityExtractor
	filters    *extract.FilterExtractor
	synth      *sparql.Synthesizer
	ai         QueryGenerator
	retry      RetryPolicy
	sleeper    Sleeper
	logger     logger.Logger
}

func New(vocab *vocabulary.Vocabulary, namespace string, opts ...Option) *Translator {
	t := &Translator{
		classifier: intent.NewClassifier(vocab),
		entities:   extract.NewEntityExtractor(vocab),
		filters:    extract.NewFilterExtractor(vocab),
		synth:      sparql.NewSynthesizer(namespace, vocab),
		retry:      DefaultRetryPolicy(),
		sleeper:    TimerSleeper{},
		logger:     logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Analysis is the deterministic reading of a question.
type Analysis struct {
	Domain   models.QueryDomain
	Entities models.Entities
	Filters  models.FilterMap
}

// Analyze classifies the question and extracts its entities and filters.
func (t *Translator) Analyze(question string) Analysis {
	normalized := vocabulary.Normalize(question)
	return Analysis{
		Domain:   t.classifier.Classify(normalized),
		Entities: t.entities.Extract(normalized),
		Filters:  t.filters.Extract(normalized),
	}
}

// Synthesize renders the template query for an analysis.
func (t *Translator) Synthesize(a Analysis) string {
	return t.synth.Synthesize(a.Domain, a.Entities, a.Filters)
}

// Translate always returns a result whose Query passes sparql.Validate.
// A deadline on ctx cuts retries short and forces the fallback.
func (t *Translator) Translate(ctx context.Context, question string) models.PipelineResult {
	a := t.Analyze(question)
	requestID := uuid.NewString()
	log := t.logger.With(map[string]interface{}{
		"requestId": requestID,
		"domain":    string(a.Domain),
	})

	o := t.orchestrate(ctx, question, a, log)

	result := models.PipelineResult{
		RequestID:      requestID,
		Question:       question,
		Domain:         a.Domain,
		Entities:       a.Entities,
		Filters:        a.Filters,
		Query:          o.query,
		Confidence:     Score(a.Domain, a.Entities, a.Filters, o.query),
		Source:         o.source,
		Attempts:       o.attempts,
		FallbackReason: o.reason,
	}

	metrics.TranslationsTotal.WithLabelValues(string(result.Domain), string(result.Source)).Inc()
	metrics.TranslationConfidence.Observe(result.Confidence)
	if result.Source == models.SourceDeterministic {
		metrics.FallbacksTotal.WithLabelValues(result.FallbackReason).Inc()
	}

	log.Info("question translated", map[string]interface{}{
		"source":     string(result.Source),
		"attempts":   result.Attempts,
		"confidence": result.Confidence,
	})
	return result
}

type state int

const (
	stateAttemptAI state = iota
	stateFallback
	stateDone
)

type outcome struct {
	query    string
	source   models.Source
	attempts int
	failures int
	reason   string
}

func (t *Translator) orchestrate(ctx context.Context, question string, a Analysis, log logger.Logger) outcome {
	var o outcome

	st := stateAttemptAI
	if t.ai == nil {
		o.reason = ReasonDisabled
		st = stateFallback
	}

	for st != stateDone {
		switch st {
		case stateAttemptAI:
			st = t.attempt(ctx, question, &o, log)
		case stateFallback:
			o.query = t.Synthesize(a)
			o.source = models.SourceDeterministic
			st = stateDone
		}
	}
	return o
}

// attempt makes one generative call and returns the next state.
func (t *Translator) attempt(ctx context.Context, question string, o *outcome, log logger.Logger) state {
	if ctx.Err() != nil {
		o.reason = ReasonDeadline
		return stateFallback
	}

	o.attempts++
	query, err := t.ai.Generate(ctx, question)
	if err == nil {
		metrics.GenAIAttemptsTotal.WithLabelValues("success").Inc()
		o.query = query
		o.source = models.SourceAIAssisted
		o.reason = ""
		return stateDone
	}

	if errors.Is(err, generator.ErrValidation) {
		metrics.GenAIAttemptsTotal.WithLabelValues("validation").Inc()
		log.Warn("generated query rejected", map[string]interface{}{
			"attempt": o.attempts,
			"error":   err.Error(),
		})
		o.reason = ReasonValidation
		return stateFallback
	}

	metrics.GenAIAttemptsTotal.WithLabelValues("transport").Inc()
	o.failures++
	log.Warn("generation attempt failed", map[string]interface{}{
		"attempt": o.attempts,
		"error":   err.Error(),
	})
	if o.failures >= t.retry.MaxAttempts {
		o.reason = ReasonRetriesExhausted
		return stateFallback
	}

	if err := t.sleeper.Sleep(ctx, t.retry.Backoff(o.failures)); err != nil {
		o.reason = ReasonDeadline
		return stateFallback
	}
	return stateAttemptAI
}
