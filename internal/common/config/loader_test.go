package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: ecotourism-workers
camunda:
  broker_address: localhost:26500
workers:
  translate-question:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, defaultNamespace, cfg.Translator.OntologyNamespace)
	assert.Equal(t, 3, cfg.Translator.MaxAttempts)
	assert.Equal(t, 1000, cfg.Translator.BackoffBase)
	assert.Equal(t, 30000, cfg.Translator.BackoffMax)
	assert.Equal(t, 15000, cfg.Translator.RequestDeadline)
	assert.Equal(t, 0.1, cfg.APIs.GenAI.Temperature)
	assert.Equal(t, 10000, cfg.APIs.GenAI.Timeout)
	assert.Equal(t, 2048, cfg.APIs.GenAI.MaxTokens)
	assert.False(t, cfg.APIs.GenAI.Enabled())
	assert.Equal(t, 100, cfg.Analytics.RecentLimit)
	assert.Equal(t, ":8080", cfg.Metrics.Address)
	assert.Equal(t, "info", cfg.Logging.Level)

	worker := cfg.Workers["translate-question"]
	assert.True(t, worker.Enabled)
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 30000, worker.Timeout)
	assert.Equal(t, 3, worker.MaxRetries)

	assert.NoError(t, ValidateForWorkers(cfg))
}

func TestLoadFromFile_ExplicitValues(t *testing.T) {
	t.Setenv("ECO_TEST_GENAI_KEY", "from-env")
	path := writeConfig(t, `
apis:
  genai:
    base_url: http://genai.local:8000
    api_key: ${ECO_TEST_GENAI_KEY}
    model: gemini-1.5-flash
    temperature: 0
    timeout: 2500
translator:
  ontology_namespace: http://example.org/eco#
  max_attempts: 5
  backoff_base: 200
analytics:
  enabled: true
  recent_limit: 10
database:
  redis:
    address: localhost:6379
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.APIs.GenAI.Enabled())
	assert.Equal(t, "from-env", cfg.APIs.GenAI.APIKey)
	assert.Equal(t, 0.0, cfg.APIs.GenAI.Temperature)
	assert.Equal(t, 2500*time.Millisecond, GetDuration(cfg.APIs.GenAI.Timeout))
	assert.Equal(t, "http://example.org/eco#", cfg.Translator.OntologyNamespace)
	assert.Equal(t, 5, cfg.Translator.MaxAttempts)
	assert.Equal(t, 200, cfg.Translator.BackoffBase)
	assert.True(t, cfg.Analytics.Enabled)
	assert.Equal(t, 10, cfg.Analytics.RecentLimit)

	assert.Error(t, ValidateForWorkers(cfg))
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "negative attempts",
			body: "translator:\n  max_attempts: -1\n",
		},
		{
			name: "namespace with angle bracket",
			body: "translator:\n  ontology_namespace: \"http://x.org/a>b#\"\n",
		},
		{
			name: "relative namespace",
			body: "translator:\n  ontology_namespace: ontology#\n",
		},
		{
			name: "analytics without redis",
			body: "analytics:\n  enabled: true\n",
		},
		{
			name: "backoff cap below base",
			body: "translator:\n  backoff_base: 2000\n  backoff_max: 500\n",
		},
		{
			name: "temperature out of range",
			body: "apis:\n  genai:\n    temperature: 3.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"classify-question": {Enabled: false, MaxJobsActive: 2},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "classify-question"))
	assert.Equal(t, 2, GetWorkerConfig(cfg, "classify-question").MaxJobsActive)

	assert.True(t, IsWorkerEnabled(cfg, "synthesize-sparql"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "synthesize-sparql").Timeout)
}
