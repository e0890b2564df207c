package charts

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// Themes accepted by chart configurations.
var Themes = []string{
	string(types.ThemeWesteros),
	string(types.ThemeWalden),
	string(types.ThemeWonderland),
	string(types.ThemeChalk),
}

type renderableChart interface {
	components.Charter
	Render(io.Writer) error
}

// Renderer turns chart specs into go-echarts markup.
type Renderer struct {
	theme      string
	assetsHost string
	height     string
}

// RendererOption customizes renderer behavior.
type RendererOption func(*Renderer)

// WithTheme sets the default theme (defaults to Westeros).
func WithTheme(theme string) RendererOption {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithAssetsHost(host string) RendererOption {
	return func(r *Renderer) {
		r.assetsHost = host
	}
}

// WithHeight overrides the chart height.
func WithHeight(height string) RendererOption {
	return func(r *Renderer) {
		r.height = height
	}
}

// NewRenderer builds a renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		theme:  types.ThemeWesteros,
		height: defaultChartHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces standalone HTML for a single chart.
func (r *Renderer) Render(spec Spec) (string, error) {
	chart, err := r.build(spec)
	if err != nil {
		return "", err
	}
	return renderChart(chart)
}

// RenderPage composes several specs into one go-echarts page.
func (r *Renderer) RenderPage(title string, specs []Spec) (string, error) {
	page := components.NewPage().
		SetPageTitle(title).
		SetLayout(components.PageFlexLayout)
	if r.assetsHost != "" {
		page.SetAssetsHost(r.assetsHost)
	}
	for _, spec := range specs {
		chart, err := r.build(spec)
		if err != nil {
			return "", err
		}
		page.AddCharts(chart)
	}
	return renderChart(page)
}

func (r *Renderer) build(spec Spec) (renderableChart, error) {
	switch strings.ToLower(spec.Type) {
	case TypeBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions(spec)...)
		bar.SetXAxis(spec.XAxis)
		for _, s := range spec.Series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return bar, nil
	case TypeLine:
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions(spec)...)
		line.SetXAxis(spec.XAxis)
		for _, s := range spec.Series {
			line.AddSeries(s.Name, toLineData(s.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return line, nil
	case TypePie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalChartOptions(spec)...)
		for _, s := range spec.Series {
			pie.AddSeries(s.Name, toPieData(s.Points))
		}
		return pie, nil
	default:
		return nil, fmt.Errorf("charts: unsupported chart type: %s", spec.Type)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) globalChartOptions(spec Spec) []charts.GlobalOpts {
	theme := spec.Theme
	if theme == "" {
		theme = r.theme
	}
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}),
	}
}

func toBarData(points []Point) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  point.Label,
			Value: point.Value,
		}
		if point.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: point.Color}
		}
	}
	return data
}

func toLineData(points []Point) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []Point) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
		if point.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: point.Color}
		}
	}
	return data
}
