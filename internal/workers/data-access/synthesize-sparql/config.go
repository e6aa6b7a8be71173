// internal/workers/data-access/synthesize-sparql/config.go
package synthesizesparql

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
