package domain

import "github.com/google/uuid"

const (
	MaxCategoryNameLength        = 100
	MaxCategoryDescriptionLength = 500
)

// Category is an immutable book category. Names are stored lowercase and
// are unique case-insensitively.
type Category struct {
	id          uuid.UUID
	name        string
	description *string
}

// NewCategory validates and normalizes the fields and creates a Category with a fresh UUID v4.
func NewCategory(name string, description *string) (Category, error) {
	name = NormalizeCategoryName(name)
	if err := ValidateCategoryName(name); err != nil {
		return Category{}, err
	}
	if err := validateCategoryDescription(description); err != nil {
		return Category{}, err
	}
	return Category{id: uuid.New(), name: name, description: copyStringPtr(description)}, nil
}

// RestoreCategory rebuilds a Category from storage without validation.
func RestoreCategory(id uuid.UUID, name string, description *string) Category {
	return Category{id: id, name: name, description: copyStringPtr(description)}
}

// ValidateCategoryName checks an already normalized category name.
func ValidateCategoryName(name string) error {
	if name == "" {
		return requiredError("category.name")
	}
	if err := ValidateText("category.name", name); err != nil {
		return err
	}
	if charLen(name) > MaxCategoryNameLength {
		return tooLongError("category.name", MaxCategoryNameLength, name)
	}
	return nil
}

func validateCategoryDescription(description *string) error {
	if description == nil {
		return nil
	}
	return maxChars("category.description", *description, MaxCategoryDescriptionLength)
}

func (c Category) ID() uuid.UUID        { return c.id }
func (c Category) Name() string         { return c.name }
func (c Category) Description() *string { return copyStringPtr(c.description) }

// WithDescription returns a copy with a new description; nil clears it.
func (c Category) WithDescription(description *string) (Category, error) {
	if err := validateCategoryDescription(description); err != nil {
		return Category{}, err
	}
	c.description = copyStringPtr(description)
	return c, nil
}

// Equal compares categories by id.
func (c Category) Equal(other Category) bool { return c.id == other.id }

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
