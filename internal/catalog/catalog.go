// Package catalog loads question catalogs from JSON or XLSX files and
// provides a built-in seed catalog.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/XSaadiX/Quiz-app/internal/question"
)

// ErrInvalidCatalog is returned when a catalog fails schema or structural
// validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is a titled, ordered list of question definitions.
type Catalog struct {
	Title     string          `json:"title,omitempty"`
	Questions []question.Spec `json:"questions"`
}

// Load reads a catalog from path, choosing the format by extension:
// .xlsx is read as a spreadsheet, anything else as JSON.
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, "")
	default:
		return LoadJSON(path)
	}
}

// LoadJSON reads and validates a JSON catalog file.
func LoadJSON(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates data against the catalog schema and decodes it.
func Parse(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var c Catalog
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every entry and reports all problems found at once.
func (c *Catalog) Validate() error {
	var errs []string

	if len(c.Questions) == 0 {
		errs = append(errs, "catalog has no questions")
	}

	seen := make(map[int]bool, len(c.Questions))
	for i, s := range c.Questions {
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("entry %d: duplicate question id %d", i+1, s.ID))
		}
		seen[s.ID] = true

		if _, err := question.FromSpec(s); err != nil {
			errs = append(errs, fmt.Sprintf("entry %d: %v", i+1, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}

// Build constructs the questions of the catalog in order.
func (c *Catalog) Build() ([]*question.Question, error) {
	return question.FromSpecs(c.Questions)
}

// Marshal encodes the catalog as indented JSON.
func (c *Catalog) Marshal() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
