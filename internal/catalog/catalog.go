// Package catalog loads the immutable scheme catalog used for eligibility matching.
//
// The catalog is read once at startup from a JSON or YAML file. Any problem with
// the file is returned as an error so the process can refuse to start.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BTreeMap/eSahyog/internal/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Catalog is a read-only, ordered collection of schemes.
type Catalog struct {
	schemes []models.Scheme
}

// Load reads, normalises, and validates the catalog file at path.
func Load(path string) (*Catalog, error) {
	slog.Debug("catalog.Load: loading scheme catalog", "path", path)
	if strings.TrimSpace(path) == "" {
		return nil, models.ErrEmptyCatalogPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("catalog.Load: failed to read catalog file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to read scheme catalog %s: %w", path, err)
	}

	schemes, err := decode(path, data)
	if err != nil {
		slog.Error("catalog.Load: failed to parse catalog file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to parse scheme catalog %s: %w", path, err)
	}

	c, err := New(schemes)
	if err != nil {
		return nil, fmt.Errorf("invalid scheme catalog %s: %w", path, err)
	}
	slog.Info("catalog.Load: scheme catalog loaded", "path", path, "schemes", c.Len())
	return c, nil
}

// New builds a catalog from in-memory schemes, applying the same
// normalisation and validation as Load. The input slice is copied.
func New(schemes []models.Scheme) (*Catalog, error) {
	v := newValidator()
	out := make([]models.Scheme, 0, len(schemes))
	for i, s := range schemes {
		s = normalize(s)
		if err := v.Struct(s); err != nil {
			return nil, fmt.Errorf("scheme #%d (%q): %w", i+1, s.Name, err)
		}
		out = append(out, s)
	}
	return &Catalog{schemes: out}, nil
}

// Schemes returns the schemes in catalog order. The returned slice is a
// copy and may be modified by the caller.
func (c *Catalog) Schemes() []models.Scheme {
	if c == nil {
		return nil
	}
	out := make([]models.Scheme, len(c.schemes))
	copy(out, c.schemes)
	return out
}

// Len returns the number of schemes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.schemes)
}

func decode(path string, data []byte) ([]models.Scheme, error) {
	var schemes []models.Scheme
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schemes); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &schemes); err != nil {
			return nil, err
		}
	}
	return schemes, nil
}

// normalize lower-cases the case-insensitive criteria so matching and
// validation see canonical values. Slices and pointers are copied.
func normalize(s models.Scheme) models.Scheme {
	s.Name = strings.TrimSpace(s.Name)
	s.Link = strings.TrimSpace(s.Link)
	c := s.Criteria
	if c.AgeMin != nil {
		c.AgeMin = models.IntPtr(*c.AgeMin)
	}
	if c.AgeMax != nil {
		c.AgeMax = models.IntPtr(*c.AgeMax)
	}
	if c.IncomeMax != nil {
		c.IncomeMax = models.IntPtr(*c.IncomeMax)
	}
	if c.Gender != nil {
		c.Gender = models.StringPtr(strings.ToLower(strings.TrimSpace(*c.Gender)))
	}
	if c.Occupation != nil {
		occ := make([]string, len(c.Occupation))
		for i, o := range c.Occupation {
			occ[i] = strings.ToLower(strings.TrimSpace(o))
		}
		c.Occupation = occ
	}
	s.Criteria = c
	return s
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateAgeRange, models.Criteria{})
	return v
}

func validateAgeRange(sl validator.StructLevel) {
	c := sl.Current().Interface().(models.Criteria)
	if c.AgeMin != nil && c.AgeMax != nil && *c.AgeMin > *c.AgeMax {
		sl.ReportError(c.AgeMin, "AgeMin", "age_min", "ltefield", "AgeMax")
	}
}
