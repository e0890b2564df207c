package charts

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// ManifestDocument models a YAML manifest that overrides or extends chart definitions.
type ManifestDocument struct {
	Version string          `yaml:"version"`
	Charts  []ManifestChart `yaml:"charts"`
	Source  string          `yaml:"-"`
}

// ManifestChart describes a single chart entry. Provider names a registered
// chart code whose provider is reused when Definition.Code is new.
type ManifestChart struct {
	Definition Definition `yaml:"definition"`
	Provider   string     `yaml:"provider,omitempty"`
}

// LoadManifestFile reads a manifest from disk and registers it against the registry.
func (r *Registry) LoadManifestFile(path string) (*ManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers definitions from a decoded manifest. Every
// entry is checked before any is applied, so a failing manifest leaves the
// registry untouched.
func (r *Registry) LoadManifestDocument(doc *ManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("charts: manifest document is nil")
	}
	prepared := make([]preparedDefinition, 0, len(doc.Charts))
	aliases := map[string]Provider{}
	for _, chart := range doc.Charts {
		code := chart.Definition.Code
		item, err := prepareDefinition(chart.Definition)
		if err != nil {
			return fmt.Errorf("charts: register chart %s from %s: %w", code, doc.Source, err)
		}
		switch {
		case chart.Provider != "":
			provider, ok := aliases[chart.Provider]
			if !ok {
				provider, ok = r.Provider(chart.Provider)
			}
			if !ok {
				return fmt.Errorf("charts: chart %s references unknown provider %s", code, chart.Provider)
			}
			aliases[code] = provider
		default:
			if _, ok := r.Provider(code); !ok {
				return fmt.Errorf("charts: chart %s from %s has no provider", code, doc.Source)
			}
		}
		prepared = append(prepared, item)
	}
	r.mu.Lock()
	for code, provider := range aliases {
		r.providers[code] = provider
	}
	r.mu.Unlock()
	r.store(prepared...)
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*ManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("charts: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("charts: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*ManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc ManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("charts: manifest is empty")
		}
		return nil, fmt.Errorf("charts: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *ManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("charts: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Charts))
	for idx, chart := range doc.Charts {
		if chart.Definition.Code == "" {
			return fmt.Errorf("charts: manifest chart at index %d is missing definition.code", idx)
		}
		if chart.Definition.Type == "" {
			return fmt.Errorf("charts: manifest chart %s missing definition.type", chart.Definition.Code)
		}
		if _, exists := seen[chart.Definition.Code]; exists {
			return fmt.Errorf("charts: manifest duplicates chart code %s", chart.Definition.Code)
		}
		seen[chart.Definition.Code] = struct{}{}
	}
	return nil
}

func (doc *ManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Charts {
		if doc.Charts[i].Definition.Name == "" {
			doc.Charts[i].Definition.Name = nameFromCode(doc.Charts[i].Definition.Code)
		}
	}
}

// nameFromCode derives a display name from the last code segment:
// "leads.chart.closer_ranking" becomes "Closer ranking".
func nameFromCode(code string) string {
	segment := code
	if idx := strings.LastIndex(code, "."); idx >= 0 {
		segment = code[idx+1:]
	}
	words := strings.ReplaceAll(strcase.ToSnake(segment), "_", " ")
	if words == "" {
		return ""
	}
	return strings.ToUpper(words[:1]) + words[1:]
}
