// Package api exposes the player endpoints over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "player-api/internal/common/errors"
	"player-api/internal/common/logger"
	"player-api/internal/common/validation"
	"player-api/internal/models"
	"player-api/pkg/registry"
)

const (
	WelcomeMessage = "Welcome to the Basketball Player Comparison API"
	maxRequestBody = 1 << 20
)

// StatsProvider resolves a player name to season averages.
type StatsProvider interface {
	GetPlayerStats(ctx context.Context, name string) (map[string]interface{}, error)
}

// NarrativeGenerator writes free text about players.
type NarrativeGenerator interface {
	Summary(ctx context.Context, name string, stats map[string]interface{}) (string, error)
	Comparison(ctx context.Context, player1, player2 string) (string, error)
}

// SimilarityFinder lists players comparable to a given one.
type SimilarityFinder interface {
	FindSimilar(ctx context.Context, name string) ([]models.SimilarPlayer, error)
}

// ServiceInfo is reported by the health endpoint.
type ServiceInfo struct {
	Name    string
	Version string
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	stats      StatsProvider
	narrative  NarrativeGenerator
	similarity SimilarityFinder
	validator  *validation.SchemaValidator
	errors     *apperrors.ErrorHandler
	logger     logger.Logger
	info       ServiceInfo
}

func NewHandler(
	stats StatsProvider,
	narrative NarrativeGenerator,
	similarity SimilarityFinder,
	validator *validation.SchemaValidator,
	log logger.Logger,
	info ServiceInfo,
) *Handler {
	return &Handler{
		stats:      stats,
		narrative:  narrative,
		similarity: similarity,
		validator:  validator,
		errors:     apperrors.NewErrorHandler(log),
		logger:     log,
		info:       info,
	}
}

// Root returns the fixed welcome message.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: WelcomeMessage})
}

// Health returns service health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: h.info.Name,
		Version: h.info.Version,
	})
}

// PlayerSummary looks up stats then asks for a narrative summary.
// The generator is not called when the stats lookup fails.
func (h *Handler) PlayerSummary(w http.ResponseWriter, r *http.Request) {
	var req models.PlayerRequest
	if err := h.decode(r, registry.EndpointPlayerSummary, &req); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	stats, err := h.stats.GetPlayerStats(r.Context(), req.Name)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	summary, err := h.narrative.Summary(r.Context(), req.Name, stats)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	if stats == nil {
		stats = map[string]interface{}{}
	}
	respondJSON(w, http.StatusOK, models.PlayerResponse{
		Name:    req.Name,
		Summary: summary,
		Stats:   stats,
	})
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	var req models.PlayerComparisonRequest
	if err := h.decode(r, registry.EndpointPlayerCompare, &req); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	comparison, err := h.narrative.Comparison(r.Context(), req.Player1, req.Player2)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ComparisonResponse{
		Player1:    req.Player1,
		Player2:    req.Player2,
		Comparison: comparison,
	})
}

func (h *Handler) SimilarPlayers(w http.ResponseWriter, r *http.Request) {
	var req models.PlayerRequest
	if err := h.decode(r, registry.EndpointPlayerSimilar, &req); err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	similar, err := h.similarity.FindSimilar(r.Context(), req.Name)
	if err != nil {
		h.errors.Respond(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.SimilarPlayersResponse{
		Player:         req.Name,
		SimilarPlayers: similar,
	})
}

// decode reads the body, checks it against the endpoint schema and unmarshals it into out.
func (h *Handler) decode(r *http.Request, endpointID string, out interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("reading body: %v", err), nil)
	}
	if len(body) > maxRequestBody {
		return apperrors.NewValidationError("request body too large", nil)
	}

	if res := h.validator.Validate(endpointID, body); !res.Valid {
		fields := make(map[string]interface{}, len(res.Errors))
		for _, fe := range res.Errors {
			fields[fe.Field] = fe.Message
		}
		return apperrors.NewValidationError(strings.Join(res.GetErrorMessages(), "; "), fields)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("invalid request: %v", err), nil)
	}
	return nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
