package domain

import "github.com/google/uuid"

// MaxEmbeddingTextLength bounds the text sent to the embedding service.
// Current field limits keep derived text well below it.
const MaxEmbeddingTextLength = 7000

// Embedding is a semantic vector produced by an embedding model.
type Embedding struct {
	Vector []float32
	Model  string
}

// IsZero reports whether the embedding carries no vector.
func (e Embedding) IsZero() bool { return len(e.Vector) == 0 }

// DuplicateType names the rule that matched an existing book.
type DuplicateType string

const DuplicateTypeISBN DuplicateType = "isbn"

// DuplicateQuery is the input of a duplicate check. Only ISBN is used.
type DuplicateQuery struct {
	ISBN ISBN
	// ExcludeID skips the given book; set on update paths.
	ExcludeID uuid.UUID
}

// DuplicateResult reports whether a matching book exists.
type DuplicateResult struct {
	IsDuplicate   bool
	DuplicateType DuplicateType
	ExistingID    uuid.UUID
}

// SaveBookParams is persisted in one atomic operation: the book row,
// its junction rows and the embedding vector.
type SaveBookParams struct {
	Book      Book
	Embedding Embedding
}
