package stats

// Stats is one season-averages record exactly as the provider returned it.
type Stats = map[string]interface{}

type player struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type searchResponse struct {
	Data []player `json:"data"`
}

type averagesResponse struct {
	Data []Stats `json:"data"`
}
