package charts

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

const gridTitle = "Leads"

// Service renders registered charts from lead collections.
type Service struct {
	registry  *Registry
	validator ConfigValidator
	renderer  *Renderer
	cache     RenderCache
	telemetry leads.Telemetry
}

// ServiceOption customizes the service.
type ServiceOption func(*Service)

// WithRegistry swaps the chart registry.
func WithRegistry(reg *Registry) ServiceOption {
	return func(s *Service) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithValidator swaps the configuration validator. The registry validates by
// default.
func WithValidator(v ConfigValidator) ServiceOption {
	return func(s *Service) {
		s.validator = v
	}
}

// WithRenderer swaps the chart renderer.
func WithRenderer(r *Renderer) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithRenderCache injects a render cache. Pass nil to disable caching.
func WithRenderCache(cache RenderCache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithTelemetry records render events.
func WithTelemetry(t leads.Telemetry) ServiceOption {
	return func(s *Service) {
		s.telemetry = t
	}
}

// NewService wires a chart service with the built-in registry and a five
// minute render cache.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		registry: NewRegistry(),
		renderer: NewRenderer(),
		cache:    NewCache(5 * time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = s.registry
	}
	s.telemetry = leads.NormalizeTelemetry(s.telemetry)
	return s
}

// Registry exposes the underlying registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Definitions lists the renderable charts.
func (s *Service) Definitions() []Definition {
	return s.registry.Definitions()
}

// LoadManifest applies a manifest file to the registry and drops cached
// markup of every chart it redefines.
func (s *Service) LoadManifest(path string) error {
	doc, err := s.registry.LoadManifestFile(path)
	if err != nil {
		return err
	}
	if s.cache != nil {
		for _, chart := range doc.Charts {
			s.cache.Invalidate(chart.Definition.Code)
		}
	}
	return nil
}

// Render renders one chart.
func (s *Service) Render(ctx context.Context, code string, config map[string]any, items []leads.Lead) (Rendered, error) {
	def, spec, cfg, err := s.spec(ctx, code, config, items)
	if err != nil {
		return Rendered{}, err
	}
	html, err := s.render(chartKey(def, cfg, items), func() (string, error) {
		return s.renderer.Render(spec)
	})
	if err != nil {
		return Rendered{}, fmt.Errorf("charts: render %s: %w", code, err)
	}
	s.telemetry.Record(ctx, "charts.render", map[string]any{
		"code":  def.Code,
		"type":  def.Type,
		"leads": len(items),
	})
	return Rendered{Code: def.Code, Type: def.Type, Title: spec.Title, HTML: html}, nil
}

// RenderGrid composes every registered chart into a single page. configs is
// keyed by chart code.
func (s *Service) RenderGrid(ctx context.Context, items []leads.Lead, configs map[string]map[string]any) (string, error) {
	defs := s.registry.Definitions()
	specs := make([]Spec, 0, len(defs))
	merged := make([]map[string]any, 0, len(defs))
	for _, def := range defs {
		_, spec, cfg, err := s.spec(ctx, def.Code, configs[def.Code], items)
		if err != nil {
			return "", err
		}
		specs = append(specs, spec)
		merged = append(merged, cfg)
	}

	html, err := s.render(gridKey(defs, merged, items), func() (string, error) {
		return s.renderer.RenderPage(gridTitle, specs)
	})
	if err != nil {
		return "", fmt.Errorf("charts: render grid: %w", err)
	}
	s.telemetry.Record(ctx, "charts.grid", map[string]any{
		"charts": len(specs),
		"leads":  len(items),
	})
	return html, nil
}

func (s *Service) spec(ctx context.Context, code string, config map[string]any, items []leads.Lead) (Definition, Spec, map[string]any, error) {
	def, ok := s.registry.Definition(code)
	if !ok {
		return Definition{}, Spec{}, nil, fmt.Errorf("%w: %s", ErrChartNotFound, code)
	}
	provider, ok := s.registry.Provider(code)
	if !ok {
		return Definition{}, Spec{}, nil, fmt.Errorf("%w: %s has no provider", ErrChartNotFound, code)
	}
	cfg := mergeConfig(def.Defaults, config)
	if err := s.validator.Validate(def, cfg); err != nil {
		return Definition{}, Spec{}, nil, err
	}
	spec, err := provider.Build(ctx, Context{
		Definition:    def,
		Configuration: cfg,
		Leads:         items,
	})
	if err != nil {
		return Definition{}, Spec{}, nil, err
	}
	if spec.Type == "" {
		spec.Type = def.Type
	}
	return def, spec, cfg, nil
}

func (s *Service) render(key RenderKey, fn func() (string, error)) (string, error) {
	if s.cache == nil {
		return fn()
	}
	return s.cache.GetOrRender(key, fn)
}
