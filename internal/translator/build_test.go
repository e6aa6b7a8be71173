package translator

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ecotourism-workers/internal/common/config"
	"ecotourism-workers/internal/common/errors"
	"ecotourism-workers/internal/common/logger"
	"ecotourism-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Translator: config.TranslatorConfig{
			OntologyNamespace: "http://www.ecotourism.org/ontology#",
			MaxAttempts:       2,
			BackoffBase:       1,
		},
		APIs: config.APIsConfig{GenAI: config.GenAIConfig{Timeout: 2000, MaxTokens: 256}},
	}
}

func TestBuild_WithoutGenAI(t *testing.T) {
	tr, vocab, err := Build(baseConfig(), logger.NewTestLogger(t), Options{})
	require.NoError(t, err)
	require.NotNil(t, vocab)

	result := tr.Translate(context.Background(), "train ou bus ?")
	assert.Equal(t, models.SourceDeterministic, result.Source)
	assert.Equal(t, "ai_disabled", result.FallbackReason)
}

func TestBuild_WithGenAI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"text": "SELECT ?transport WHERE { ?transport a eco:Transport . } LIMIT 20",
		})
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.APIs.GenAI.BaseURL = server.URL

	tr, _, err := Build(cfg, logger.NewTestLogger(t), Options{})
	require.NoError(t, err)

	result := tr.Translate(context.Background(), "train ou bus ?")
	assert.Equal(t, models.SourceAIAssisted, result.Source)
	assert.Equal(t, 1, result.Attempts)
	assert.Contains(t, result.Query, "PREFIX eco: <http://www.ecotourism.org/ontology#>")

	tr, _, err = Build(cfg, logger.NewTestLogger(t), Options{DisableAI: true})
	require.NoError(t, err)
	assert.Equal(t, models.SourceDeterministic, tr.Translate(context.Background(), "train ou bus ?").Source)
}

func TestBuild_InvalidVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1}`), 0o644))

	cfg := baseConfig()
	cfg.Translator.VocabularyPath = path

	_, _, err := Build(cfg, logger.NewNoOpLogger(), Options{})
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeVocabularyInvalid, stdErr.Code)
}
