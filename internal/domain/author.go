package domain

import "github.com/google/uuid"

const MaxAuthorNameLength = 300

// Author is an immutable book author. Names are unique and case-sensitive.
type Author struct {
	id   uuid.UUID
	name string
}

// NewAuthor validates name and creates an Author with a fresh UUID v4.
func NewAuthor(name string) (Author, error) {
	name = NormalizeAuthorName(name)
	if err := ValidateAuthorName(name); err != nil {
		return Author{}, err
	}
	return Author{id: uuid.New(), name: name}, nil
}

// RestoreAuthor rebuilds an Author from storage without validation.
func RestoreAuthor(id uuid.UUID, name string) Author {
	return Author{id: id, name: name}
}

// ValidateAuthorName checks an already normalized author name.
func ValidateAuthorName(name string) error {
	if name == "" {
		return requiredError("author.name")
	}
	if err := ValidateText("author.name", name); err != nil {
		return err
	}
	if charLen(name) > MaxAuthorNameLength {
		return tooLongError("author.name", MaxAuthorNameLength, name)
	}
	return nil
}

func (a Author) ID() uuid.UUID { return a.id }
func (a Author) Name() string  { return a.name }

// WithName returns a copy with a new, validated name.
func (a Author) WithName(name string) (Author, error) {
	name = NormalizeAuthorName(name)
	if err := ValidateAuthorName(name); err != nil {
		return Author{}, err
	}
	a.name = name
	return a, nil
}

// Equal compares authors by id.
func (a Author) Equal(other Author) bool { return a.id == other.id }
