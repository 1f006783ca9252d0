package embedding

import (
	"math"
	"sort"
)

// Cosine returns the cosine similarity of a and b. Vectors of different
// length or with a zero norm score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Match is a candidate with its similarity to a query vector.
type Match struct {
	Text       string
	Similarity float64
}

// Nearest ranks candidates by cosine similarity to query and returns those
// at or above threshold, best first. Ties keep candidate order. texts and
// vectors are parallel slices.
func Nearest(query []float32, texts []string, vectors [][]float32, threshold float64, limit int) []Match {
	var out []Match
	for i, v := range vectors {
		if i >= len(texts) {
			break
		}
		if sim := Cosine(query, v); sim >= threshold {
			out = append(out, Match{Text: texts[i], Similarity: sim})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
