package observability

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatheredNames(t *testing.T, reg *promclient.Registry) []string {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	return names
}

func TestObservability_RecordsThroughRegistry(t *testing.T) {
	reg := promclient.NewRegistry()
	o, err := NewWithRegisterer("ecoquery-test", reg)
	require.NoError(t, err)
	defer o.Shutdown()

	ctx := context.Background()
	o.RecordJobProcessed(ctx, "translate-question", "completed")
	o.RecordJobDuration(ctx, "translate-question", 120*time.Millisecond, "completed")
	o.RecordTranslation(ctx, "accommodations", "deterministic", 3*time.Millisecond)

	names := gatheredNames(t, reg)
	assert.Contains(t, names, "jobs_processed_total")
	assert.Contains(t, names, "jobs_duration_milliseconds")
	assert.Contains(t, names, "translation_duration_milliseconds")
	for _, name := range names {
		assert.NotContains(t, name, ".", "metric names are underscore-escaped")
	}
}

func TestObservability_NilSafe(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		o.RecordJobProcessed(context.Background(), "x", "y")
		o.RecordJobDuration(context.Background(), "x", time.Second, "y")
		o.RecordTranslation(context.Background(), "x", "y", time.Second)
		o.Shutdown()
	})
}
