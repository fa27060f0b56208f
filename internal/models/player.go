package models

// PlayerRequest is the body of the summary and similar-players endpoints.
type PlayerRequest struct {
	Name string `json:"name"`
}

// PlayerComparisonRequest is the body of the compare endpoint.
type PlayerComparisonRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// PlayerResponse carries the generated summary and the raw season averages.
// Stats is not omitempty: an empty map means averages were unavailable.
type PlayerResponse struct {
	Name    string                 `json:"name"`
	Summary string                 `json:"summary"`
	Stats   map[string]interface{} `json:"stats"`
}

type ComparisonResponse struct {
	Player1    string `json:"player1"`
	Player2    string `json:"player2"`
	Comparison string `json:"comparison"`
}

type SimilarPlayer struct {
	Name            string  `json:"name"`
	SimilarityScore float64 `json:"similarity_score"`
}

type SimilarPlayersResponse struct {
	Player         string          `json:"player"`
	SimilarPlayers []SimilarPlayer `json:"similar_players"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}
