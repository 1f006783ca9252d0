// Package embedding turns words into vectors for similarity ranking.
package embedding

import "context"

// Embedder defines the interface contract for embedding generation services.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	ModelName() string
}
