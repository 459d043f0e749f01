package domain

import "github.com/google/uuid"

const MaxBookTypeNameLength = 50

// DefaultBookTypeNames is the seed list of book types. Types are server-side
// state: the catalog only ever reads them.
var DefaultBookTypeNames = []string{
	"technical",
	"fiction",
	"non-fiction",
	"textbook",
	"reference",
	"biography",
	"poetry",
	"comic",
}

// BookType classifies a book. Read-only for the book service.
type BookType struct {
	id   uuid.UUID
	name string
}

// NewBookType validates name and creates a BookType with a fresh UUID v4.
// Used by seeding code only.
func NewBookType(name string) (BookType, error) {
	name = NormalizeTypeName(name)
	if name == "" {
		return BookType{}, requiredError("type.name")
	}
	if charLen(name) > MaxBookTypeNameLength {
		return BookType{}, tooLongError("type.name", MaxBookTypeNameLength, name)
	}
	return BookType{id: uuid.New(), name: name}, nil
}

// RestoreBookType rebuilds a BookType from storage without validation.
func RestoreBookType(id uuid.UUID, name string) BookType {
	return BookType{id: id, name: name}
}

func (t BookType) ID() uuid.UUID { return t.id }
func (t BookType) Name() string  { return t.name }

// IsZero reports whether the type is unset.
func (t BookType) IsZero() bool { return t.id == uuid.Nil && t.name == "" }

// Equal compares types by id.
func (t BookType) Equal(other BookType) bool { return t.id == other.id }
