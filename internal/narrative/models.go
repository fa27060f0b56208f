// internal/narrative/models.go
package narrative

// generateRequest is the body of POST {base}/generate.
type generateRequest struct {
	Prompt            string   `json:"prompt"`
	MaxTokens         int      `json:"max_tokens"`
	Temperature       float64  `json:"temperature"`
	K                 int      `json:"k"`
	StopSequences     []string `json:"stop_sequences"`
	ReturnLikelihoods string   `json:"return_likelihoods"`
	Model             string   `json:"model,omitempty"`
}

type generation struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Generations []generation `json:"generations"`
	Message     string       `json:"message,omitempty"`
}
