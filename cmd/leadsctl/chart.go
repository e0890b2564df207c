package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-leads-dashboard/components/charts"
)

type chartCmd struct {
	List chartListCmd `cmd:"" help:"List registered charts."`
	Add  chartAddCmd  `cmd:"" help:"Add a chart entry to a manifest, reusing a built-in provider."`
}

type chartListCmd struct{}

func (cmd *chartListCmd) Run(g *Globals) error {
	svc, err := g.chartService()
	if err != nil {
		return err
	}
	return listCharts(os.Stdout, svc.Definitions())
}

func listCharts(w io.Writer, defs []charts.Definition) error {
	for _, def := range defs {
		if _, err := fmt.Fprintf(w, "%-32s %-5s %s\n", def.Code, def.Type, def.Name); err != nil {
			return err
		}
	}
	return nil
}

type chartAddCmd struct {
	Code         string            `required:"" help:"Fully-qualified chart code (e.g. leads.chart.origin_revenue)."`
	Provider     string            `required:"" enum:"leads.chart.revenue,leads.chart.status,leads.chart.closers,leads.chart.origins" help:"Built-in chart whose provider renders the new code."`
	Name         string            `help:"Display name (derived from the code when empty)."`
	Description  string            `help:"One-line description."`
	Type         string            `help:"Chart type override (line, bar, pie). Defaults to the provider's type."`
	Position     int               `help:"Grid position."`
	Default      map[string]string `help:"Default configuration values (key=value)."`
	ManifestPath string            `name:"manifest" required:"" type:"path" help:"Manifest YAML file to update."`
	Overwrite    bool              `help:"Replace an existing entry with the same code."`
}

func (cmd *chartAddCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("leadsctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	entry, err := cmd.entry()
	if err != nil {
		return err
	}
	if err := upsertChart(doc, entry, cmd.Overwrite); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := charts.NewRegistry().LoadManifestDocument(doc); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s (provider %s)\n", cmd.Code, manifestPath, cmd.Provider)
	return nil
}

func (cmd *chartAddCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("leadsctl: chart code %s must contain at least one '.' segment", cmd.Code)
	}
	return nil
}

func (cmd *chartAddCmd) entry() (charts.ManifestChart, error) {
	base, ok := charts.NewRegistry().Definition(cmd.Provider)
	if !ok {
		return charts.ManifestChart{}, fmt.Errorf("leadsctl: unknown provider %s", cmd.Provider)
	}
	chartType := cmd.Type
	if chartType == "" {
		chartType = base.Type
	}
	name := cmd.Name
	if name == "" {
		name = deriveName(cmd.Code)
	}
	return charts.ManifestChart{
		Definition: charts.Definition{
			Code:        cmd.Code,
			Name:        name,
			Description: cmd.Description,
			Type:        chartType,
			Schema:      base.Schema,
			Defaults:    parseDefaults(cmd.Default),
			Position:    cmd.Position,
		},
		Provider: cmd.Provider,
	}, nil
}

// parseDefaults types flag values so they satisfy the chart schema.
func parseDefaults(raw map[string]string) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		if n, err := strconv.Atoi(value); err == nil {
			out[key] = n
			continue
		}
		if b, err := strconv.ParseBool(value); err == nil {
			out[key] = b
			continue
		}
		out[key] = value
	}
	return out
}

func upsertChart(doc *charts.ManifestDocument, entry charts.ManifestChart, overwrite bool) error {
	replaced := false
	for idx := range doc.Charts {
		if doc.Charts[idx].Definition.Code != entry.Definition.Code {
			continue
		}
		if !overwrite {
			return fmt.Errorf("leadsctl: manifest already defines chart %s (use --overwrite to replace)", entry.Definition.Code)
		}
		doc.Charts[idx] = entry
		replaced = true
	}
	if !replaced {
		doc.Charts = append(doc.Charts, entry)
	}
	sort.Slice(doc.Charts, func(i, j int) bool {
		return doc.Charts[i].Definition.Code < doc.Charts[j].Definition.Code
	})
	return nil
}

func loadOrInitManifest(path string) (*charts.ManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &charts.ManifestDocument{
				Version: charts.ManifestVersion,
				Charts:  []charts.ManifestChart{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("leadsctl: stat manifest: %w", err)
	}
	return charts.ReadManifest(path)
}

func writeManifest(path string, doc *charts.ManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("leadsctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("leadsctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("leadsctl: write manifest: %w", err)
	}
	return nil
}

// deriveName turns the last code segment into a display name:
// "leads.chart.originRevenue" becomes "Origin Revenue".
func deriveName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	words := strings.Fields(strings.ReplaceAll(strcase.ToSnake(slug), "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
