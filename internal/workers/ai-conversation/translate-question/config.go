// internal/workers/ai-conversation/translate-question/config.go
package translatequestion

import "time"

type Config struct {
	// Deadline bounds one whole translation including retries and backoff.
	Deadline time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Deadline: 15 * time.Second,
	}
}
