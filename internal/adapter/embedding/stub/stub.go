// Package stub provides a deterministic offline embedder.
package stub

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/crypto/blake2b"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

const Model = "stub-blake2b"

// Embedder derives a unit-length vector from a blake2b XOF of the text.
// The same text always yields the same vector.
type Embedder struct {
	dimensions int
}

// New creates a stub embedder producing vectors of the given size.
func New(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = 8
	}
	return &Embedder{dimensions: dimensions}
}

func (e *Embedder) GenerateEmbedding(ctx context.Context, text string) (domain.Embedding, error) {
	if err := ctx.Err(); err != nil {
		return domain.Embedding{}, &domain.EmbeddingError{Kind: domain.EmbeddingUnavailable, Err: err}
	}

	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		return domain.Embedding{}, fmt.Errorf("stub: init xof: %w", err)
	}
	xof.Write([]byte(text))

	buf := make([]byte, 4*e.dimensions)
	if _, err := xof.Read(buf); err != nil {
		return domain.Embedding{}, fmt.Errorf("stub: read xof: %w", err)
	}

	vector := make([]float32, e.dimensions)
	var norm float64
	for i := range vector {
		// Map each 32-bit word into [-1, 1).
		u := binary.LittleEndian.Uint32(buf[4*i:])
		v := float64(u)/float64(math.MaxUint32)*2 - 1
		vector[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vector {
			vector[i] = float32(float64(vector[i]) / norm)
		}
	}

	return domain.Embedding{Vector: vector, Model: Model}, nil
}
