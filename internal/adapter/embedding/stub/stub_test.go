package stub

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

func TestEmbedder_Deterministic(t *testing.T) {
	t.Parallel()

	e := New(16)
	a, err := e.GenerateEmbedding(context.Background(), "Clean Code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := e.GenerateEmbedding(context.Background(), "Clean Code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.Vector) != 16 {
		t.Fatalf("len(Vector) = %d, want 16", len(a.Vector))
	}
	for i := range a.Vector {
		if a.Vector[i] != b.Vector[i] {
			t.Fatalf("Vector[%d] differs between calls: %v vs %v", i, a.Vector[i], b.Vector[i])
		}
	}
	if a.Model != Model {
		t.Errorf("Model = %q, want %q", a.Model, Model)
	}
}

func TestEmbedder_UnitLength(t *testing.T) {
	t.Parallel()

	got, err := New(64).GenerateEmbedding(context.Background(), "any text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sum float64
	for _, v := range got.Vector {
		sum += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(sum)-1) > 1e-5 {
		t.Errorf("norm = %v, want 1", math.Sqrt(sum))
	}
}

func TestEmbedder_DifferentTextsDiffer(t *testing.T) {
	t.Parallel()

	e := New(8)
	a, _ := e.GenerateEmbedding(context.Background(), "one")
	b, _ := e.GenerateEmbedding(context.Background(), "two")

	same := true
	for i := range a.Vector {
		if a.Vector[i] != b.Vector[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("expected different texts to yield different vectors")
	}
}

func TestEmbedder_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(8).GenerateEmbedding(ctx, "x")
	if !errors.Is(err, domain.ErrEmbeddingService) {
		t.Fatalf("expected embedding service error, got %v", err)
	}
}

func TestNew_DefaultDimensions(t *testing.T) {
	t.Parallel()

	got, err := New(0).GenerateEmbedding(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Vector) != 8 {
		t.Errorf("len(Vector) = %d, want 8", len(got.Vector))
	}
}
