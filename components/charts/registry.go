package charts

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrChartNotFound is returned when a chart code is not registered.
var ErrChartNotFound = errors.New("charts: chart not found")

// Registry stores chart definitions, their compiled configuration schemas and
// their providers. It is the default ConfigValidator of a Service.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
	providers   map[string]Provider
	schemas     *schemaSet
}

type preparedDefinition struct {
	def    Definition
	schema *jsonschema.Schema
}

// NewRegistry builds a registry preloaded with the built-in lead charts.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[string]Definition{},
		providers:   map[string]Provider{},
		schemas:     newSchemaSet(),
	}
	for _, def := range DefaultDefinitions() {
		_ = reg.RegisterDefinition(def)
		if provider, ok := defaultProviders[def.Code]; ok {
			_ = reg.RegisterProvider(def.Code, provider)
		}
	}
	return reg
}

// RegisterDefinition adds or replaces a chart definition. The schema is
// compiled up front so broken definitions never reach the render path.
func (r *Registry) RegisterDefinition(def Definition) error {
	prepared, err := prepareDefinition(def)
	if err != nil {
		return err
	}
	r.store(prepared)
	return nil
}

// Validate checks config against the schema compiled for def.Code.
func (r *Registry) Validate(def Definition, config map[string]any) error {
	return r.schemas.validate(def.Code, config)
}

func prepareDefinition(def Definition) (preparedDefinition, error) {
	if strings.TrimSpace(def.Code) == "" {
		return preparedDefinition{}, fmt.Errorf("charts: definition code is required")
	}
	switch strings.ToLower(def.Type) {
	case TypeLine, TypeBar, TypePie:
	default:
		return preparedDefinition{}, fmt.Errorf("charts: definition %s has unsupported type %q", def.Code, def.Type)
	}
	def.Type = strings.ToLower(def.Type)
	schema, err := compileSchema(def)
	if err != nil {
		return preparedDefinition{}, err
	}
	return preparedDefinition{def: def, schema: schema}, nil
}

func (r *Registry) store(items ...preparedDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.definitions[item.def.Code] = item.def
		r.schemas.put(item.def.Code, item.schema)
	}
}

// RegisterProvider binds a provider to a chart code.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if provider == nil {
		return fmt.Errorf("charts: provider for %s is nil", code)
	}
	r.mu.Lock()
	r.providers[code] = provider
	r.mu.Unlock()
	return nil
}

// Definition returns the definition registered for code.
func (r *Registry) Definition(code string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider returns the provider registered for code.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// Definitions lists renderable definitions ordered by position then code.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	out := make([]Definition, 0, len(r.definitions))
	for code, def := range r.definitions {
		if _, ok := r.providers[code]; ok {
			out = append(out, def)
		}
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b Definition) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		return strings.Compare(a.Code, b.Code)
	})
	return out
}
