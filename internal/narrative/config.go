// internal/narrative/config.go
package narrative

import (
	"fmt"
	"time"
)

const ProviderName = "cohere"

const (
	SummaryMaxTokens    = 200
	ComparisonMaxTokens = 300
	DefaultTemperature  = 0.7
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string // empty lets the provider pick its default
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("genai base_url is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("genai api_key is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("genai timeout must not be negative")
	}
	return nil
}
