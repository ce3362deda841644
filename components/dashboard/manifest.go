package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current fixture manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// FixtureManifest is the YAML document a deployment uses to override the
// built-in fixtures.
type FixtureManifest struct {
	Version  string   `json:"version" yaml:"version"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fixtures Fixtures `json:"fixtures" yaml:"fixtures"`
	Source   string   `json:"-" yaml:"-"`
}

// ReadManifest loads and validates a fixture manifest from disk.
func ReadManifest(path string, validator ManifestValidator) (*FixtureManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f, validator)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader. Unknown fields are
// rejected. A nil validator skips the schema check.
func DecodeManifest(r io.Reader, validator ManifestValidator) (*FixtureManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc FixtureManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, validationError(TextCodeInvalidFixture, "dashboard: manifest is empty")
		}
		return nil, validationError(TextCodeInvalidFixture, "dashboard: parse manifest: %v", err)
	}
	doc.applyDefaults()
	if validator != nil {
		if err := validator.ValidateManifest(&doc); err != nil {
			return nil, err
		}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeManifest writes fixtures as a version 1 manifest.
func EncodeManifest(w io.Writer, name string, fixtures Fixtures) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(FixtureManifest{Version: ManifestVersion, Name: name, Fixtures: fixtures}); err != nil {
		return fmt.Errorf("dashboard: encode manifest: %w", err)
	}
	return encoder.Close()
}

// ValidateFixtures runs the manifest checks over fixtures that did not come
// from a manifest file, e.g. a remote response. A nil validator skips the
// schema check.
func ValidateFixtures(fixtures Fixtures, validator ManifestValidator) error {
	doc := FixtureManifest{Version: ManifestVersion, Fixtures: fixtures}
	if validator != nil {
		if err := validator.ValidateManifest(&doc); err != nil {
			return err
		}
	}
	return doc.Validate()
}

// Validate checks the cross-field rules a schema cannot express.
func (doc *FixtureManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return validationError(TextCodeInvalidFixture, "dashboard: unsupported manifest version %q", doc.Version)
	}
	fx := doc.Fixtures
	if err := checkDefaultIndex("header.default_range", fx.Header.DefaultRange, len(fx.Header.Ranges)); err != nil {
		return err
	}
	if err := checkDefaultIndex("trend.default_range", fx.Trend.DefaultRange, len(fx.Trend.Ranges)); err != nil {
		return err
	}
	if fx.Trend.DefaultMetric != "" {
		if _, err := ParseTrendMetric(string(fx.Trend.DefaultMetric)); err != nil {
			return err
		}
	}
	for _, button := range fx.Trend.Metrics {
		if _, err := ParseTrendMetric(string(button.Metric)); err != nil {
			return err
		}
	}
	seen := make(map[string]struct{}, len(fx.StatCards))
	for idx, card := range fx.StatCards {
		if card.Code == "" {
			return validationError(TextCodeInvalidFixture, "dashboard: stat card at index %d is missing code", idx)
		}
		if _, exists := seen[card.Code]; exists {
			return validationError(TextCodeInvalidFixture, "dashboard: manifest duplicates stat card %s", card.Code)
		}
		seen[card.Code] = struct{}{}
		if err := card.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (doc *FixtureManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	defaults := DefaultFixtures()
	fx := &doc.Fixtures
	if fx.Brand == "" {
		fx.Brand = defaults.Brand
	}
	if fx.Title == "" {
		fx.Title = defaults.Title
	}
	if fx.ActivePath == "" {
		fx.ActivePath = defaults.ActivePath
	}
	if fx.Trend.DefaultMetric == "" {
		fx.Trend.DefaultMetric = MetricConversion
	}
}

func checkDefaultIndex(field string, index, size int) error {
	if size == 0 && index == 0 {
		return nil
	}
	if index < 0 || index >= size {
		return validationError(TextCodeInvalidFixture, "dashboard: %s %d out of range [0,%d)", field, index, size)
	}
	return nil
}
