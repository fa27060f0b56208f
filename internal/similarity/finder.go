// Package similarity finds players with a comparable profile.
package similarity

import (
	"context"

	"player-api/internal/models"
)

// placeholder is returned for every player until embedding search lands.
var placeholder = []models.SimilarPlayer{
	{Name: "Similar Player 1", SimilarityScore: 0.85},
	{Name: "Similar Player 2", SimilarityScore: 0.82},
	{Name: "Similar Player 3", SimilarityScore: 0.78},
}

// Finder returns a fixed neighbour list. It performs no I/O.
type Finder struct{}

func NewFinder() *Finder {
	return &Finder{}
}

// FindSimilar ignores name and returns a copy of the placeholder list.
// TODO: replace with nearest-neighbour search over player embeddings.
func (f *Finder) FindSimilar(_ context.Context, name string) ([]models.SimilarPlayer, error) {
	out := make([]models.SimilarPlayer, len(placeholder))
	copy(out, placeholder)
	return out, nil
}
