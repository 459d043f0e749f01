package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 500
	MaxDescriptionLength = 5000
	MaxPathLength        = 1000
	MaxAuthorsPerBook    = 20
	MaxCategoriesPerBook = 10
)

// Book is an immutable catalog entry. Every change goes through Update,
// which returns a new value sharing id and createdAt.
type Book struct {
	id          uuid.UUID
	title       string
	authors     []Author
	bookType    BookType
	categories  []Category
	format      Format
	isbn        *ISBN
	description string
	available   bool
	path        *string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewBookParams holds user input for NewBook. Format and ISBN are raw strings:
// the factory derives the value objects.
type NewBookParams struct {
	// ID is optional; uuid.Nil generates a new UUID v4.
	ID          uuid.UUID
	Title       string
	Authors     []Author
	Type        BookType
	Categories  []Category
	Format      string
	ISBN        *string
	Description string
	Available   bool
	Path        *string
}

// BookRecord is a trusted, already validated book as read from storage.
type BookRecord struct {
	ID          uuid.UUID
	Title       string
	Authors     []Author
	Type        BookType
	Categories  []Category
	Format      Format
	ISBN        *ISBN
	Description string
	Available   bool
	Path        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookUpdate lists the fields to change. nil means "keep"; for ISBN and Path
// a pointer to an empty string clears the value.
type BookUpdate struct {
	Title       *string
	Authors     []Author
	Type        *BookType
	Categories  []Category
	Format      *string
	ISBN        *string
	Description *string
	Available   *bool
	Path        *string
}

// IsEmpty reports whether the update changes nothing.
func (u BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Authors == nil && u.Type == nil && u.Categories == nil &&
		u.Format == nil && u.ISBN == nil && u.Description == nil && u.Available == nil && u.Path == nil
}

// NewBook validates all fields and creates a Book.
func NewBook(p NewBookParams) (Book, error) {
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	d := &bookDraft{
		id:          id,
		title:       strings.TrimSpace(p.Title),
		authors:     p.Authors,
		bookType:    p.Type,
		categories:  p.Categories,
		rawFormat:   p.Format,
		rawISBN:     blankToNil(p.ISBN),
		description: strings.TrimSpace(p.Description),
		path:        blankToNil(p.Path),
	}
	if err := d.validate(allBookFields); err != nil {
		return Book{}, err
	}

	now := nowUTC()
	return Book{
		id:          d.id,
		title:       d.title,
		authors:     slices.Clone(d.authors),
		bookType:    d.bookType,
		categories:  slices.Clone(d.categories),
		format:      d.format,
		isbn:        d.isbn,
		description: d.description,
		available:   p.Available,
		path:        d.path,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// RestoreBook rebuilds a Book from storage without validation.
func RestoreBook(r BookRecord) Book {
	var isbn *ISBN
	if r.ISBN != nil {
		v := *r.ISBN
		isbn = &v
	}
	return Book{
		id:          r.ID,
		title:       r.Title,
		authors:     slices.Clone(r.Authors),
		bookType:    r.Type,
		categories:  slices.Clone(r.Categories),
		format:      r.Format,
		isbn:        isbn,
		description: r.Description,
		available:   r.Available,
		path:        copyStringPtr(r.Path),
		createdAt:   r.CreatedAt,
		updatedAt:   r.UpdatedAt,
	}
}

// Update applies u to a copy of b, re-validating only the changed fields.
// The returned book shares id and createdAt; updatedAt is refreshed.
func (b Book) Update(u BookUpdate) (Book, error) {
	d := &bookDraft{
		id:          b.id,
		title:       b.title,
		authors:     b.authors,
		bookType:    b.bookType,
		categories:  b.categories,
		format:      b.format,
		isbn:        b.isbn,
		description: b.description,
		path:        b.path,
	}
	changed := make(map[string]bool)

	if u.Title != nil {
		d.title = strings.TrimSpace(*u.Title)
		changed[fieldTitle] = true
	}
	if u.Authors != nil {
		d.authors = u.Authors
		changed[fieldAuthors] = true
	}
	if u.Type != nil {
		d.bookType = *u.Type
		changed[fieldType] = true
	}
	if u.Categories != nil {
		d.categories = u.Categories
		changed[fieldCategories] = true
	}
	if u.Format != nil {
		d.rawFormat = *u.Format
		changed[fieldFormat] = true
	}
	if u.ISBN != nil {
		d.rawISBN = blankToNil(u.ISBN)
		d.isbn = nil
		changed[fieldISBN] = true
	}
	if u.Description != nil {
		d.description = strings.TrimSpace(*u.Description)
		changed[fieldDescription] = true
	}
	if u.Path != nil {
		d.path = blankToNil(u.Path)
		changed[fieldPath] = true
	}

	if err := d.validate(changed); err != nil {
		return Book{}, err
	}

	next := b
	next.title = d.title
	next.authors = slices.Clone(d.authors)
	next.bookType = d.bookType
	next.categories = slices.Clone(d.categories)
	next.format = d.format
	next.isbn = d.isbn
	next.description = d.description
	next.path = d.path
	if u.Available != nil {
		next.available = *u.Available
	}
	next.updatedAt = nowUTC()
	if !next.updatedAt.After(b.updatedAt) {
		next.updatedAt = b.updatedAt.Add(time.Microsecond)
	}
	return next, nil
}

func (b Book) ID() uuid.UUID          { return b.id }
func (b Book) Title() string          { return b.title }
func (b Book) Authors() []Author      { return slices.Clone(b.authors) }
func (b Book) Type() BookType         { return b.bookType }
func (b Book) Categories() []Category { return slices.Clone(b.categories) }
func (b Book) Format() Format         { return b.format }
func (b Book) Description() string    { return b.description }
func (b Book) Available() bool        { return b.available }
func (b Book) Path() *string          { return copyStringPtr(b.path) }
func (b Book) CreatedAt() time.Time   { return b.createdAt }
func (b Book) UpdatedAt() time.Time   { return b.updatedAt }

// ISBN returns the ISBN value object, or nil when the book has none.
func (b Book) ISBN() *ISBN {
	if b.isbn == nil {
		return nil
	}
	v := *b.isbn
	return &v
}

// Equal compares books by id only.
func (b Book) Equal(other Book) bool { return b.id == other.id }

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldAuthors     = "authors"
	fieldType        = "type"
	fieldCategories  = "categories"
	fieldFormat      = "format"
	fieldISBN        = "isbn"
	fieldDescription = "description"
	fieldPath        = "path"
)

// allBookFields is the nil set: every check runs.
var allBookFields map[string]bool

type bookDraft struct {
	id          uuid.UUID
	title       string
	authors     []Author
	bookType    BookType
	categories  []Category
	rawFormat   string
	format      Format
	rawISBN     *string
	isbn        *ISBN
	description string
	path        *string
}

type bookCheck struct {
	field string
	run   func() error
}

// validate runs required checks, then length checks, then structural checks.
// Only fields in the set are checked; a nil set checks everything.
func (d *bookDraft) validate(fields map[string]bool) error {
	required := []bookCheck{
		{fieldTitle, func() error { return requireText(fieldTitle, d.title) }},
		{fieldAuthors, func() error { return requireItems(fieldAuthors, len(d.authors)) }},
		{fieldType, func() error {
			if strings.TrimSpace(d.bookType.Name()) == "" {
				return requiredError(fieldType)
			}
			return nil
		}},
		{fieldCategories, func() error { return requireItems(fieldCategories, len(d.categories)) }},
		{fieldFormat, func() error { return requireText(fieldFormat, d.rawFormat) }},
		{fieldDescription, func() error { return requireText(fieldDescription, d.description) }},
	}

	lengths := []bookCheck{
		{fieldTitle, func() error { return maxChars(fieldTitle, d.title, MaxTitleLength) }},
		{fieldAuthors, func() error { return maxItems(fieldAuthors, len(d.authors), MaxAuthorsPerBook) }},
		{fieldCategories, func() error { return maxItems(fieldCategories, len(d.categories), MaxCategoriesPerBook) }},
		{fieldDescription, func() error { return maxChars(fieldDescription, d.description, MaxDescriptionLength) }},
		{fieldPath, func() error {
			if d.path == nil {
				return nil
			}
			return maxChars(fieldPath, *d.path, MaxPathLength)
		}},
	}

	structural := []bookCheck{
		{fieldID, func() error { return validateUUIDv4(fieldID, d.id) }},
		{fieldAuthors, func() error { return d.checkAuthors() }},
		{fieldType, func() error {
			if d.bookType.ID() == uuid.Nil {
				return invalidUUIDError(fieldType, d.bookType.ID().String())
			}
			return nil
		}},
		{fieldCategories, func() error { return d.checkCategories() }},
		{fieldFormat, func() error {
			f, err := ParseFormat(d.rawFormat)
			if err != nil {
				return err
			}
			d.format = f
			return nil
		}},
		{fieldISBN, func() error {
			if d.rawISBN == nil {
				d.isbn = nil
				return nil
			}
			isbn, err := NewISBN(*d.rawISBN)
			if err != nil {
				return invalidISBNFieldError(fieldISBN, *d.rawISBN)
			}
			d.isbn = &isbn
			return nil
		}},
	}

	for _, phase := range [][]bookCheck{required, lengths, structural} {
		for _, c := range phase {
			if fields != nil && !fields[c.field] {
				continue
			}
			if err := c.run(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *bookDraft) checkAuthors() error {
	seen := make(map[uuid.UUID]struct{}, len(d.authors))
	for _, a := range d.authors {
		if a.ID() == uuid.Nil {
			return invalidUUIDError(fieldAuthors, a.ID().String())
		}
		if _, dup := seen[a.ID()]; dup {
			return duplicateItemError(fieldAuthors, a.Name())
		}
		seen[a.ID()] = struct{}{}
	}
	return nil
}

func (d *bookDraft) checkCategories() error {
	seen := make(map[uuid.UUID]struct{}, len(d.categories))
	for _, c := range d.categories {
		if c.ID() == uuid.Nil {
			return invalidUUIDError(fieldCategories, c.ID().String())
		}
		if _, dup := seen[c.ID()]; dup {
			return duplicateItemError(fieldCategories, c.Name())
		}
		seen[c.ID()] = struct{}{}
	}
	return nil
}

// ValidateTitle checks a trimmed book title.
func ValidateTitle(title string) error {
	if err := requireText(fieldTitle, title); err != nil {
		return err
	}
	return maxChars(fieldTitle, title, MaxTitleLength)
}

// ValidateDescription checks a trimmed book description.
func ValidateDescription(description string) error {
	if err := requireText(fieldDescription, description); err != nil {
		return err
	}
	return maxChars(fieldDescription, description, MaxDescriptionLength)
}

// ValidatePath checks an optional storage path.
func ValidatePath(path *string) error {
	if path == nil {
		return nil
	}
	return maxChars(fieldPath, *path, MaxPathLength)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return requiredError(field)
	}
	return nil
}

func requireItems(field string, n int) error {
	if n == 0 {
		return requiredError(field)
	}
	return nil
}

func maxChars(field, value string, limit int) error {
	if err := ValidateText(field, value); err != nil {
		return err
	}
	if charLen(value) > limit {
		return tooLongError(field, limit, value)
	}
	return nil
}

func maxItems(field string, n, limit int) error {
	if n > limit {
		return tooManyItemsError(field, limit)
	}
	return nil
}

func validateUUIDv4(field string, id uuid.UUID) error {
	if id == uuid.Nil || id.Version() != 4 || id.Variant() != uuid.RFC4122 {
		return invalidUUIDError(field, id.String())
	}
	return nil
}

// ParseBookID parses a textual book id and checks it is a UUID v4.
func ParseBookID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalidUUIDError(fieldID, raw)
	}
	if err := validateUUIDv4(fieldID, id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
