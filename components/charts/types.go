package charts

import (
	"context"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// Chart types supported by the renderer.
const (
	TypeLine = "line"
	TypeBar  = "bar"
	TypePie  = "pie"
)

// Definition describes a chart that can be rendered from lead data.
type Definition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string         `json:"type" yaml:"type"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Defaults    map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Position    int            `json:"position,omitempty" yaml:"position,omitempty"`
}

// Provider turns lead data into a chart spec.
type Provider interface {
	Build(ctx context.Context, meta Context) (Spec, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta Context) (Spec, error)

// Build calls f.
func (f ProviderFunc) Build(ctx context.Context, meta Context) (Spec, error) {
	return f(ctx, meta)
}

// Context carries the inputs a provider needs.
type Context struct {
	Definition    Definition
	Configuration map[string]any
	Leads         []leads.Lead
}

// Spec is a renderer-neutral chart description.
type Spec struct {
	Type     string
	Title    string
	Subtitle string
	XAxis    []string
	Series   []Series
	Theme    string
}

// Series is a named list of points.
type Series struct {
	Name   string
	Points []Point
}

// Point is a single value, optionally labeled and colored.
type Point struct {
	Label string
	Value float64
	Color string
}

// Rendered is the payload returned for a chart.
type Rendered struct {
	Code  string `json:"code"`
	Type  string `json:"type"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}
