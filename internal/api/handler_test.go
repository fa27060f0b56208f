package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"player-api/internal/common/config"
	apperrors "player-api/internal/common/errors"
	"player-api/internal/common/logger"
	"player-api/internal/common/validation"
	"player-api/internal/models"
	"player-api/internal/similarity"
	"player-api/pkg/registry"
)

// ==========================
// Fakes
// ==========================

type fakeStats struct {
	stats map[string]interface{}
	err   error
	names []string
}

func (f *fakeStats) GetPlayerStats(_ context.Context, name string) (map[string]interface{}, error) {
	f.names = append(f.names, name)
	return f.stats, f.err
}

type generatorCall struct {
	operation string
	players   []string
}

// fakeGenerator records every call it receives.
type fakeGenerator struct {
	mu    sync.Mutex
	calls []generatorCall
	text  string
	err   error
}

func (f *fakeGenerator) Summary(_ context.Context, name string, _ map[string]interface{}) (string, error) {
	f.record(generatorCall{operation: "summary", players: []string{name}})
	return f.text, f.err
}

func (f *fakeGenerator) Comparison(_ context.Context, p1, p2 string) (string, error) {
	f.record(generatorCall{operation: "comparison", players: []string{p1, p2}})
	return f.text, f.err
}

func (f *fakeGenerator) record(c generatorCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// ==========================
// Helpers
// ==========================

func newTestValidator(t *testing.T) *validation.SchemaValidator {
	t.Helper()
	v, err := validation.NewSchemaValidator(registry.Default())
	require.NoError(t, err)
	return v
}

func newTestRouter(t *testing.T, st StatsProvider, gen NarrativeGenerator) http.Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	h := NewHandler(st, gen, similarity.NewFinder(), newTestValidator(t), log, ServiceInfo{Name: "player-api", Version: "test"})
	return NewRouter(h, config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	}, log)
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// ==========================
// Root & Health
// ==========================

func TestRoot_ReturnsWelcomeMessage(t *testing.T) {
	router := newTestRouter(t, &fakeStats{}, &fakeGenerator{})

	for i := 0; i < 2; i++ {
		rec := do(t, router, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Welcome to the Basketball Player Comparison API"}`, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &fakeStats{}, &fakeGenerator{})

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"player-api","version":"test"}`, rec.Body.String())
}

// ==========================
// Summary
// ==========================

func TestPlayerSummary_Success(t *testing.T) {
	st := &fakeStats{stats: map[string]interface{}{"pts": 30.1, "season": 2023.0}}
	gen := &fakeGenerator{text: "A prolific scorer."}
	router := newTestRouter(t, st, gen)

	rec := do(t, router, http.MethodPost, "/player/summary", `{"name":"Stephen Curry"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.PlayerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Stephen Curry", resp.Name)
	assert.Equal(t, "A prolific scorer.", resp.Summary)
	assert.Equal(t, map[string]interface{}{"pts": 30.1, "season": 2023.0}, resp.Stats)

	require.Len(t, gen.calls, 1)
	assert.Equal(t, "summary", gen.calls[0].operation)
	assert.Equal(t, []string{"Stephen Curry"}, st.names)
}

func TestPlayerSummary_EmptyStatsStillSummarized(t *testing.T) {
	router := newTestRouter(t, &fakeStats{stats: map[string]interface{}{}}, &fakeGenerator{text: "Summary."})

	rec := do(t, router, http.MethodPost, "/player/summary", `{"name":"Rookie"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Rookie","summary":"Summary.","stats":{}}`, rec.Body.String())
}

func TestPlayerSummary_StatsFailureSkipsGeneration(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   apperrors.ErrorCode
	}{
		{"not found", apperrors.NewPlayerNotFoundError("Nobody"), http.StatusNotFound, apperrors.ErrCodePlayerNotFound},
		{"provider down", apperrors.NewUpstreamUnavailableError("balldontlie", assert.AnError), http.StatusBadGateway, apperrors.ErrCodeUpstreamUnavailable},
		{"unexpected", assert.AnError, http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: "never"}
			router := newTestRouter(t, &fakeStats{err: tt.err}, gen)

			rec := do(t, router, http.MethodPost, "/player/summary", `{"name":"Nobody"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			assert.Empty(t, gen.calls)
		})
	}
}

func TestPlayerSummary_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: apperrors.NewGenerationError(assert.AnError)}
	router := newTestRouter(t, &fakeStats{stats: map[string]interface{}{}}, gen)

	rec := do(t, router, http.MethodPost, "/player/summary", `{"name":"LeBron James"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, apperrors.ErrCodeGeneration, resp.Code)
	assert.NotEmpty(t, resp.Detail)
}

// ==========================
// Validation
// ==========================

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"summary missing name", "/player/summary", `{}`},
		{"summary malformed", "/player/summary", `{"name":`},
		{"compare missing player2", "/player/compare", `{"player1":"A"}`},
		{"compare wrong type", "/player/compare", `{"player1":"A","player2":7}`},
		{"similar not an object", "/player/similar", `"LeBron"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &fakeStats{}
			gen := &fakeGenerator{}
			router := newTestRouter(t, st, gen)

			rec := do(t, router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, apperrors.ErrCodeValidation, resp.Code)
			assert.Contains(t, resp.Detail, "Request validation failed")
			assert.Empty(t, st.names)
			assert.Empty(t, gen.calls)
		})
	}
}

// ==========================
// Compare & Similar
// ==========================

func TestComparePlayers_SingleGenerationCall(t *testing.T) {
	gen := &fakeGenerator{text: "Two greats."}
	st := &fakeStats{}
	router := newTestRouter(t, st, gen)

	rec := do(t, router, http.MethodPost, "/player/compare", `{"player1":"Michael Jordan","player2":"Kobe Bryant"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"player1":"Michael Jordan","player2":"Kobe Bryant","comparison":"Two greats."}`, rec.Body.String())

	require.Len(t, gen.calls, 1)
	assert.Equal(t, "comparison", gen.calls[0].operation)
	assert.Equal(t, []string{"Michael Jordan", "Kobe Bryant"}, gen.calls[0].players)
	assert.Empty(t, st.names, "compare does not look up stats")
}

func TestSimilarPlayers_SameListForAnyName(t *testing.T) {
	router := newTestRouter(t, &fakeStats{}, &fakeGenerator{})

	var lists [][]models.SimilarPlayer
	for _, name := range []string{"Tim Duncan", "Kevin Garnett"} {
		rec := do(t, router, http.MethodPost, "/player/similar", `{"name":"`+name+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.SimilarPlayersResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, name, resp.Player)
		lists = append(lists, resp.SimilarPlayers)
	}

	require.Len(t, lists[0], 3)
	assert.Equal(t, lists[0], lists[1])
	assert.Equal(t, models.SimilarPlayer{Name: "Similar Player 1", SimilarityScore: 0.85}, lists[0][0])
}

func TestSimilarPlayers_EmptyNameIsValid(t *testing.T) {
	router := newTestRouter(t, &fakeStats{}, &fakeGenerator{})

	rec := do(t, router, http.MethodPost, "/player/similar", `{"name":""}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"player":"","similar_players":[
		{"name":"Similar Player 1","similarity_score":0.85},
		{"name":"Similar Player 2","similarity_score":0.82},
		{"name":"Similar Player 3","similarity_score":0.78}]}`, rec.Body.String())
}

func TestComparePlayers_LongNamesAccepted(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	router := newTestRouter(t, &fakeStats{}, gen)
	long := strings.Repeat("a", 201)

	rec := do(t, router, http.MethodPost, "/player/compare", `{"player1":"`+long+`","player2":"B"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, gen.calls, 1)
	assert.Equal(t, []string{long, "B"}, gen.calls[0].players)
}
