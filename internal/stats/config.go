// internal/stats/config.go
package stats

import (
	"fmt"
	"time"
)

const ProviderName = "balldontlie"

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("stats base_url is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("stats timeout must not be negative")
	}
	return nil
}
