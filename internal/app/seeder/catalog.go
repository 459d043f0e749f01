package seeder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/bookshelf-backend/internal/service/book"
)

// CatalogBook is one book entry of a catalog file.
type CatalogBook struct {
	Title       string   `yaml:"title"`
	Authors     []string `yaml:"authors"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	Categories  []string `yaml:"categories"`
	Format      string   `yaml:"format"`
	ISBN        *string  `yaml:"isbn"`
	Available   *bool    `yaml:"available"`
	Path        *string  `yaml:"path"`
}

// Input converts the entry to a CreateBook input.
func (c CatalogBook) Input() book.CreateBookInput {
	return book.CreateBookInput{
		Title:         c.Title,
		Authors:       c.Authors,
		Description:   c.Description,
		Type:          c.Type,
		CategoryNames: c.Categories,
		Format:        c.Format,
		ISBN:          c.ISBN,
		Available:     c.Available,
		Path:          c.Path,
	}
}

type catalogFile struct {
	Books []CatalogBook `yaml:"books"`
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) ([]CatalogBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seeder catalog: read %s: %w", path, err)
	}
	books, err := ParseCatalog(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("seeder catalog: %s: %w", path, err)
	}
	return books, nil
}

// ParseCatalog decodes a catalog document. Unknown keys are rejected so a
// typo does not silently drop a field.
func ParseCatalog(r io.Reader) ([]CatalogBook, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return f.Books, nil
}
