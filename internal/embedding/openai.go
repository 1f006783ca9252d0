package embedding

import (
	"context"
	"fmt"
	"sort"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultBatchSize is the number of inputs sent per embeddings request.
const DefaultBatchSize = 256

var _ Embedder = (*OpenAI)(nil)

// EmbeddingsService defines the interface for making embedding API calls.
// This abstraction enables testing without calling the real OpenAI API.
type EmbeddingsService interface {
	New(ctx context.Context, params openai.EmbeddingNewParams, opts ...option.RequestOption) (*openai.CreateEmbeddingResponse, error)
}

// OpenAI embeds words with OpenAI's embeddings API.
type OpenAI struct {
	embeddings EmbeddingsService
	model      openai.EmbeddingModel
	dimensions int
	batchSize  int
}

// NewOpenAI creates an OpenAI embedder. dimensions of 0 uses the model's
// native size.
func NewOpenAI(apiKey, model string, dimensions int) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		embeddings: client.Embeddings,
		model:      openai.EmbeddingModel(model),
		dimensions: dimensions,
		batchSize:  DefaultBatchSize,
	}
}

func (o *OpenAI) params(texts []string) openai.EmbeddingNewParams {
	p := openai.EmbeddingNewParams{
		Input: openai.F[openai.EmbeddingNewParamsInputUnion](
			openai.EmbeddingNewParamsInputArrayOfStrings(texts),
		),
		Model: openai.F(o.model),
	}
	if o.dimensions > 0 {
		p.Dimensions = openai.F(int64(o.dimensions))
	}
	return p
}

// Embed generates an embedding for a single word or phrase.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.embeddings.New(ctx, o.params([]string{text}))
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding generation failed: no data returned")
	}

	return toFloat32(resp.Data[0].Embedding), nil
}

// EmbedBatch generates embeddings for texts, splitting them into requests of
// at most batchSize inputs. The result is parallel to texts.
func (o *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	size := o.batchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		chunk := texts[start:end]

		resp, err := o.embeddings.New(ctx, o.params(chunk))
		if err != nil {
			return nil, fmt.Errorf("batch embedding generation failed: %w", err)
		}

		if len(resp.Data) != len(chunk) {
			return nil, fmt.Errorf("batch embedding generation failed: expected %d embeddings, got %d", len(chunk), len(resp.Data))
		}

		// Sort by index to guarantee order matches input
		sort.Slice(resp.Data, func(i, j int) bool {
			return resp.Data[i].Index < resp.Data[j].Index
		})

		for _, data := range resp.Data {
			out = append(out, toFloat32(data.Embedding))
		}
	}

	return out, nil
}

// ModelName returns the embedding model name
func (o *OpenAI) ModelName() string {
	return string(o.model)
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
