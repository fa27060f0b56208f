// Package narrative produces player summaries and comparisons with a hosted text generation model.
package narrative

import (
	"context"
	"fmt"
	"strings"

	apperrors "player-api/internal/common/errors"
	commonhttp "player-api/internal/common/http"
	"player-api/internal/common/logger"
	"player-api/internal/common/observability"
)

// Generator talks to a Cohere-compatible generate endpoint.
type Generator struct {
	endpoint string
	model    string
	http     *commonhttp.Client
	logger   logger.Logger
}

func NewGenerator(cfg *Config, obs *observability.Observability, log logger.Logger) *Generator {
	httpClient := commonhttp.NewClient(ProviderName, cfg.Timeout, obs)
	httpClient.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	return &Generator{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/generate",
		model:    cfg.Model,
		http:     httpClient,
		logger:   log.With(map[string]interface{}{"provider": ProviderName}),
	}
}

// Summary writes a short career and playing style summary. stats is accepted
// for future prompt enrichment and currently ignored.
func (g *Generator) Summary(ctx context.Context, name string, stats map[string]interface{}) (string, error) {
	return g.generate(ctx, "summary", summaryPrompt(name), SummaryMaxTokens)
}

// Comparison contrasts two players' styles, strengths and achievements.
func (g *Generator) Comparison(ctx context.Context, player1, player2 string) (string, error) {
	return g.generate(ctx, "comparison", comparisonPrompt(player1, player2), ComparisonMaxTokens)
}

func (g *Generator) generate(ctx context.Context, operation, prompt string, maxTokens int) (string, error) {
	req := generateRequest{
		Prompt:            prompt,
		MaxTokens:         maxTokens,
		Temperature:       DefaultTemperature,
		K:                 0,
		StopSequences:     []string{},
		ReturnLikelihoods: "NONE",
		Model:             g.model,
	}

	resp, err := g.http.PostJSON(ctx, operation, g.endpoint, req)
	if err != nil {
		return "", g.fail(operation, err)
	}

	var out generateResponse
	if !resp.OK() {
		// Error bodies carry {"message": "..."}; fall back to the raw status.
		if decodeErr := resp.DecodeJSON(&out); decodeErr == nil && out.Message != "" {
			return "", g.fail(operation, fmt.Errorf("status %d: %s", resp.StatusCode, out.Message))
		}
		return "", g.fail(operation, fmt.Errorf("status %d", resp.StatusCode))
	}
	if err := resp.DecodeJSON(&out); err != nil {
		return "", g.fail(operation, err)
	}
	if len(out.Generations) == 0 {
		return "", g.fail(operation, fmt.Errorf("no generations returned"))
	}

	text := strings.TrimSpace(out.Generations[0].Text)
	g.logger.Debug("generation completed", map[string]interface{}{
		"operation": operation,
		"maxTokens": maxTokens,
		"chars":     len(text),
	})
	return text, nil
}

func (g *Generator) fail(operation string, err error) error {
	g.logger.Error("generation failed", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	return apperrors.NewGenerationError(err)
}
