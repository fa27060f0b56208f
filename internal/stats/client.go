// Package stats looks up season averages from a balldontlie-compatible provider.
package stats

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	apperrors "player-api/internal/common/errors"
	commonhttp "player-api/internal/common/http"
	"player-api/internal/common/logger"
	"player-api/internal/common/observability"
)

// Client resolves a player name to season averages with two sequential calls.
type Client struct {
	baseURL string
	http    *commonhttp.Client
	logger  logger.Logger
}

func NewClient(cfg *Config, obs *observability.Observability, log logger.Logger) *Client {
	httpClient := commonhttp.NewClient(ProviderName, cfg.Timeout, obs)
	if cfg.APIKey != "" {
		httpClient.SetHeader("Authorization", cfg.APIKey)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  log.With(map[string]interface{}{"provider": ProviderName}),
	}
}

// lookup is the state threaded through the pipeline steps.
type lookup struct {
	name     string
	playerID int64
	stats    Stats
}

type step struct {
	name string
	run  func(ctx context.Context, l *lookup) error
}

// GetPlayerStats returns the first matching player's season averages, or an
// empty map when averages are unavailable. No match is a PLAYER_NOT_FOUND error.
func (c *Client) GetPlayerStats(ctx context.Context, name string) (Stats, error) {
	l := &lookup{name: name}
	for _, s := range c.pipeline() {
		if err := s.run(ctx, l); err != nil {
			c.logger.Info("stats lookup stopped", map[string]interface{}{
				"player": name,
				"step":   s.name,
				"error":  err.Error(),
			})
			return nil, err
		}
	}
	return l.stats, nil
}

func (c *Client) pipeline() []step {
	return []step{
		{name: "search", run: c.searchPlayer},
		{name: "averages", run: c.fetchAverages},
	}
}

func (c *Client) searchPlayer(ctx context.Context, l *lookup) error {
	endpoint := fmt.Sprintf("%s/players?search=%s", c.baseURL, url.QueryEscape(l.name))

	resp, err := c.http.Get(ctx, "search", endpoint)
	if err != nil {
		return apperrors.NewUpstreamUnavailableError(ProviderName, err)
	}
	if !resp.OK() {
		return apperrors.NewPlayerNotFoundError(l.name)
	}

	var out searchResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return apperrors.NewUpstreamUnavailableError(ProviderName, err)
	}
	if len(out.Data) == 0 {
		return apperrors.NewPlayerNotFoundError(l.name)
	}

	l.playerID = out.Data[0].ID
	return nil
}

// fetchAverages never fails the lookup: any problem degrades to empty stats.
func (c *Client) fetchAverages(ctx context.Context, l *lookup) error {
	l.stats = Stats{}
	endpoint := fmt.Sprintf("%s/season_averages?player_ids[]=%d", c.baseURL, l.playerID)

	resp, err := c.http.Get(ctx, "season_averages", endpoint)
	if err != nil {
		c.degraded(l, err.Error())
		return nil
	}
	if !resp.OK() {
		c.degraded(l, fmt.Sprintf("status %d", resp.StatusCode))
		return nil
	}

	var out averagesResponse
	if err := resp.DecodeJSON(&out); err != nil {
		c.degraded(l, err.Error())
		return nil
	}
	if len(out.Data) > 0 && out.Data[0] != nil {
		l.stats = out.Data[0]
	}
	return nil
}

func (c *Client) degraded(l *lookup, reason string) {
	c.logger.Warn("season averages unavailable, returning empty stats", map[string]interface{}{
		"player":   l.name,
		"playerId": l.playerID,
		"reason":   reason,
	})
}
