// Package translator wires the translation pipeline from configuration.
package translator

import (
	"ecotourism-workers/internal/common/config"
	"ecotourism-workers/internal/common/errors"
	"ecotourism-workers/internal/common/genai"
	"ecotourism-workers/internal/common/logger"
	"ecotourism-workers/internal/translator/generator"
	"ecotourism-workers/internal/translator/pipeline"
	"ecotourism-workers/internal/vocabulary"
)

// Options adjust what Build wires beyond the configuration.
type Options struct {
	// DisableAI forces template synthesis even when a GenAI backend is set.
	DisableAI bool
}

// Build loads the vocabulary and assembles a Translator. The generative
// path is enabled only when apis.genai.base_url is set.
func Build(cfg *config.Config, log logger.Logger, opts Options) (*pipeline.Translator, *vocabulary.Vocabulary, error) {
	vocab, err := vocabulary.Load(cfg.Translator.VocabularyPath)
	if err != nil {
		return nil, nil, errors.NewVocabularyInvalidError(err)
	}

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithRetryPolicy(pipeline.RetryPolicy{
			MaxAttempts: cfg.Translator.MaxAttempts,
			BaseDelay:   config.GetDuration(cfg.Translator.BackoffBase),
			MaxDelay:    config.GetDuration(cfg.Translator.BackoffMax),
		}),
	}

	if cfg.APIs.GenAI.Enabled() && !opts.DisableAI {
		client := genai.NewClient(genai.Config{
			BaseURL:     cfg.APIs.GenAI.BaseURL,
			APIKey:      cfg.APIs.GenAI.APIKey,
			Model:       cfg.APIs.GenAI.Model,
			Timeout:     config.GetDuration(cfg.APIs.GenAI.Timeout),
			Temperature: cfg.APIs.GenAI.Temperature,
			MaxTokens:   cfg.APIs.GenAI.MaxTokens,
		})
		gen := generator.New(client, vocab, cfg.Translator.OntologyNamespace, config.GetDuration(cfg.APIs.GenAI.Timeout))
		pipelineOpts = append(pipelineOpts, pipeline.WithGenerator(gen))
	}

	return pipeline.New(vocab, cfg.Translator.OntologyNamespace, pipelineOpts...), vocab, nil
}
