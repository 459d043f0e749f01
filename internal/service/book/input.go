package book

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// CreateBookInput holds the parameters for creating a book.
type CreateBookInput struct {
	Title         string
	Authors       []string
	Description   string
	Type          string
	CategoryNames []string
	Format        string
	ISBN          *string
	Available     *bool
	Path          *string
}

// Validate runs every check that needs no I/O and returns the first failure:
// required fields, then lengths, then structure. It runs before any row is
// read or written so invalid input never leaves orphan authors or categories.
func (i CreateBookInput) Validate() error {
	v := inputValidator{}

	v.required("title", i.Title)
	v.requiredItems("authors", len(i.Authors))
	v.required("type", i.Type)
	v.requiredItems("categories", len(i.CategoryNames))
	v.required("format", i.Format)
	v.required("description", i.Description)
	v.requiredNames("author.name", i.Authors, domain.NormalizeAuthorName)
	v.requiredNames("category.name", i.CategoryNames, domain.NormalizeCategoryName)

	v.check(func() error { return domain.ValidateTitle(strings.TrimSpace(i.Title)) })
	v.check(func() error { return domain.ValidateDescription(strings.TrimSpace(i.Description)) })
	v.check(func() error { return domain.ValidatePath(trimOrNil(i.Path)) })
	v.check(func() error { return domain.ValidateText("type", i.Type) })
	v.maxItems("authors", len(i.Authors), domain.MaxAuthorsPerBook)
	v.maxItems("categories", len(i.CategoryNames), domain.MaxCategoriesPerBook)
	v.names(i.Authors, domain.NormalizeAuthorName, domain.ValidateAuthorName)
	v.names(i.CategoryNames, domain.NormalizeCategoryName, domain.ValidateCategoryName)

	v.unique("authors", i.Authors, domain.NormalizeAuthorName)
	v.unique("categories", i.CategoryNames, domain.NormalizeCategoryName)
	v.check(func() error { _, err := domain.ParseFormat(i.Format); return err })
	v.isbn(i.ISBN)

	return v.err
}

// UpdateBookInput holds the parameters for updating a book.
// nil fields are left unchanged; ISBN and Path accept ptr("") to clear.
type UpdateBookInput struct {
	ID            uuid.UUID
	Title         *string
	Authors       []string
	Description   *string
	Type          *string
	CategoryNames []string
	Format        *string
	ISBN          *string
	Available     *bool
	Path          *string
}

func (i UpdateBookInput) isEmpty() bool {
	return i.Title == nil && i.Authors == nil && i.Description == nil && i.Type == nil &&
		i.CategoryNames == nil && i.Format == nil && i.ISBN == nil && i.Available == nil && i.Path == nil
}

// Validate checks the provided fields with the same phases as CreateBookInput.
func (i UpdateBookInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", domain.CodeRequired, "required", "")
	}
	if i.isEmpty() {
		return domain.NewValidationError("input", domain.CodeRequired, "at least one field must be provided", "")
	}

	v := inputValidator{}

	if i.Title != nil {
		v.required("title", *i.Title)
	}
	if i.Authors != nil {
		v.requiredItems("authors", len(i.Authors))
	}
	if i.Type != nil {
		v.required("type", *i.Type)
	}
	if i.CategoryNames != nil {
		v.requiredItems("categories", len(i.CategoryNames))
	}
	if i.Format != nil {
		v.required("format", *i.Format)
	}
	if i.Description != nil {
		v.required("description", *i.Description)
	}
	v.requiredNames("author.name", i.Authors, domain.NormalizeAuthorName)
	v.requiredNames("category.name", i.CategoryNames, domain.NormalizeCategoryName)

	if i.Title != nil {
		v.check(func() error { return domain.ValidateTitle(strings.TrimSpace(*i.Title)) })
	}
	if i.Description != nil {
		v.check(func() error { return domain.ValidateDescription(strings.TrimSpace(*i.Description)) })
	}
	v.check(func() error { return domain.ValidatePath(trimOrNil(i.Path)) })
	if i.Type != nil {
		v.check(func() error { return domain.ValidateText("type", *i.Type) })
	}
	v.maxItems("authors", len(i.Authors), domain.MaxAuthorsPerBook)
	v.maxItems("categories", len(i.CategoryNames), domain.MaxCategoriesPerBook)
	v.names(i.Authors, domain.NormalizeAuthorName, domain.ValidateAuthorName)
	v.names(i.CategoryNames, domain.NormalizeCategoryName, domain.ValidateCategoryName)

	v.unique("authors", i.Authors, domain.NormalizeAuthorName)
	v.unique("categories", i.CategoryNames, domain.NormalizeCategoryName)
	if i.Format != nil {
		v.check(func() error { _, err := domain.ParseFormat(*i.Format); return err })
	}
	v.isbn(i.ISBN)

	return v.err
}

// inputValidator keeps the first failing check; later checks become no-ops.
type inputValidator struct {
	err error
}

func (v *inputValidator) check(fn func() error) {
	if v.err != nil {
		return
	}
	v.err = fn()
}

func (v *inputValidator) required(field, value string) {
	v.check(func() error {
		if strings.TrimSpace(value) == "" {
			return domain.NewValidationError(field, domain.CodeRequired, "required", "")
		}
		return nil
	})
}

func (v *inputValidator) requiredItems(field string, n int) {
	v.check(func() error {
		if n == 0 {
			return domain.NewValidationError(field, domain.CodeRequired, "at least one required", "")
		}
		return nil
	})
}

func (v *inputValidator) requiredNames(field string, names []string, normalize func(string) string) {
	v.check(func() error {
		for _, n := range names {
			if normalize(n) == "" {
				return domain.NewValidationError(field, domain.CodeRequired, "required", "")
			}
		}
		return nil
	})
}

func (v *inputValidator) maxItems(field string, n, limit int) {
	v.check(func() error {
		if n > limit {
			return domain.NewValidationError(field, domain.CodeTooManyItems,
				"max "+strconv.Itoa(limit)+" items", strconv.Itoa(limit))
		}
		return nil
	})
}

func (v *inputValidator) names(names []string, normalize func(string) string, validate func(string) error) {
	v.check(func() error {
		for _, n := range names {
			if err := validate(normalize(n)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (v *inputValidator) unique(field string, names []string, normalize func(string) string) {
	v.check(func() error {
		seen := make(map[string]struct{}, len(names))
		for _, n := range names {
			key := normalize(n)
			if _, dup := seen[key]; dup {
				return domain.NewValidationError(field, domain.CodeDuplicate, "duplicate item \""+key+"\"", key)
			}
			seen[key] = struct{}{}
		}
		return nil
	})
}

func (v *inputValidator) isbn(raw *string) {
	v.check(func() error {
		if trimOrNil(raw) != nil {
			if _, err := domain.NewISBN(*raw); err != nil {
				return err
			}
		}
		return nil
	})
}
