// Package analytics keeps a small audit trail of translations in Redis: a
// capped list of recent results and counters per domain, source and
// fallback reason. Queries are never cached here.
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecotourism-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	ErrWriteFailed = errors.New("ANALYTICS_WRITE_FAILED")
	ErrReadFailed  = errors.New("ANALYTICS_READ_FAILED")
)

const (
	keyRecent    = "ecoquery:analytics:recent"
	keyDomains   = "ecoquery:analytics:domains"
	keySources   = "ecoquery:analytics:sources"
	keyFallbacks = "ecoquery:analytics:fallbacks"
)

// Entry is one recorded translation.
type Entry struct {
	RequestID      string             `json:"requestId"`
	Question       string             `json:"question"`
	Domain         models.QueryDomain `json:"domain"`
	Source         models.Source      `json:"source"`
	Confidence     float64            `json:"confidence"`
	Attempts       int                `json:"attempts"`
	FallbackReason string             `json:"fallbackReason,omitempty"`
	RecordedAt     time.Time          `json:"recordedAt"`
}

type Stats struct {
	Total            int64            `json:"total"`
	ByDomain         map[string]int64 `json:"byDomain"`
	BySource         map[string]int64 `json:"bySource"`
	ByFallbackReason map[string]int64 `json:"byFallbackReason"`
}

type Recorder struct {
	client      redis.Cmdable
	recentLimit int64
	now         func() time.Time
}

// NewRecorder keeps at most recentLimit entries in the recent list.
func NewRecorder(client redis.Cmdable, recentLimit int) *Recorder {
	if recentLimit <= 0 {
		recentLimit = 100
	}
	return &Recorder{
		client:      client,
		recentLimit: int64(recentLimit),
		now:         time.Now,
	}
}

// Record stores one result atomically.
func (r *Recorder) Record(ctx context.Context, result models.PipelineResult) error {
	data, err := json.Marshal(Entry{
		RequestID:      result.RequestID,
		Question:       result.Question,
		Domain:         result.Domain,
		Source:         result.Source,
		Confidence:     result.Confidence,
		Attempts:       result.Attempts,
		FallbackReason: result.FallbackReason,
		RecordedAt:     r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, keyRecent, data)
	pipe.LTrim(ctx, keyRecent, 0, r.recentLimit-1)
	pipe.HIncrBy(ctx, keyDomains, string(result.Domain), 1)
	pipe.HIncrBy(ctx, keySources, string(result.Source), 1)
	if result.Source == models.SourceDeterministic && result.FallbackReason != "" {
		pipe.HIncrBy(ctx, keyFallbacks, result.FallbackReason, 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (r *Recorder) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 || int64(n) > r.recentLimit {
		n = int(r.recentLimit)
	}
	raw, err := r.client.LRange(ctx, keyRecent, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *Recorder) Stats(ctx context.Context) (*Stats, error) {
	domains, err := r.counters(ctx, keyDomains)
	if err != nil {
		return nil, err
	}
	sources, err := r.counters(ctx, keySources)
	if err != nil {
		return nil, err
	}
	fallbacks, err := r.counters(ctx, keyFallbacks)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByDomain: domains, BySource: sources, ByFallbackReason: fallbacks}
	for _, n := range sources {
		stats.Total += n
	}
	return stats, nil
}

func (r *Recorder) counters(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, key, err)
	}
	out := make(map[string]int64, len(raw))
	for field, value := range raw {
		var n int64
		if _, err := fmt.Sscan(value, &n); err != nil {
			continue
		}
		out[field] = n
	}
	return out, nil
}
