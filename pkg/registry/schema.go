// pkg/registry/schema.go
package registry

// EndpointRegistry is the catalog of HTTP endpoints and their request schemas.
type EndpointRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Endpoints   []Endpoint `json:"endpoints"`
}

type Endpoint struct {
	ID          string                 `json:"id"`
	Method      string                 `json:"method"`
	Path        string                 `json:"path"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema,omitempty"`
	ErrorCodes  []string               `json:"errorCodes,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
}

const (
	EndpointRoot          = "root"
	EndpointPlayerSummary = "player-summary"
	EndpointPlayerCompare = "player-compare"
	EndpointPlayerSimilar = "player-similar"
)

func nameProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func objectSchema(required []string, props map[string]interface{}) map[string]interface{} {
	req := make([]interface{}, len(required))
	for i, r := range required {
		req[i] = r
	}
	return map[string]interface{}{
		"type":       "object",
		"required":   req,
		"properties": props,
	}
}

// Default returns the built-in catalog served by the API.
func Default() *EndpointRegistry {
	playerName := objectSchema([]string{"name"}, map[string]interface{}{
		"name": nameProperty("Player full name"),
	})

	return &EndpointRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-10-19",
		Endpoints: []Endpoint{
			{
				ID:          EndpointRoot,
				Method:      "GET",
				Path:        "/",
				Description: "Static welcome message",
			},
			{
				ID:          EndpointPlayerSummary,
				Method:      "POST",
				Path:        "/player/summary",
				Description: "Season averages plus a generated career and style summary",
				InputSchema: playerName,
				ErrorCodes:  []string{"VALIDATION_ERROR", "PLAYER_NOT_FOUND", "UPSTREAM_UNAVAILABLE", "GENERATION_ERROR"},
				Tags:        []string{"stats", "generation"},
			},
			{
				ID:          EndpointPlayerCompare,
				Method:      "POST",
				Path:        "/player/compare",
				Description: "Generated comparison of two players",
				InputSchema: objectSchema([]string{"player1", "player2"}, map[string]interface{}{
					"player1": nameProperty("First player full name"),
					"player2": nameProperty("Second player full name"),
				}),
				ErrorCodes: []string{"VALIDATION_ERROR", "GENERATION_ERROR"},
				Tags:       []string{"generation"},
			},
			{
				ID:          EndpointPlayerSimilar,
				Method:      "POST",
				Path:        "/player/similar",
				Description: "Players similar to the given one (placeholder data)",
				InputSchema: playerName,
				ErrorCodes:  []string{"VALIDATION_ERROR"},
				Tags:        []string{"similarity"},
			},
		},
	}
}
