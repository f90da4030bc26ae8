package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-spa-dashboard/components/dashboard"
)

const dashboardPackage = "github.com/goliatone/go-spa-dashboard/components/dashboard"

type scaffoldCmd struct {
	Code         string   `required:"" help:"Widget code, e.g. spa.widget.vip_patients."`
	Name         string   `required:"" help:"Display name for the widget."`
	Description  string   `required:"" help:"One-line description used in manifests."`
	Category     string   `default:"spa" help:"Widget category (revenue, patients, charts, ...)."`
	ManifestPath string   `required:"" type:"path" help:"Manifest YAML file to create or update."`
	SchemaPath   string   `type:"existingfile" help:"JSON schema file for the widget configuration."`
	Builtin      string   `help:"Reuse a built-in spa provider (e.g. spa.widget.patient_stats) instead of generating a stub."`
	Tag          []string `help:"Manifest tags (repeatable)."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	Capabilities []string `help:"Provider capability labels (html,json,...)."`
	DocsURL      string   `help:"Link to provider documentation."`
	Package      string   `help:"Go package of the generated provider, recorded in the manifest."`
	ProviderOut  string   `type:"path" help:"Generated provider file (defaults to internal/widgets/<code>.go)."`
	Overwrite    bool     `help:"Replace an existing manifest entry or provider file."`
}

func (cmd *scaffoldCmd) Run(_ context.Context, rt *env) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("spactl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	providerPath := cmd.providerPath()
	constructor := "New" + deriveBaseName(cmd.Code) + "Provider"
	entry := cmd.manifestEntry(schema, providerPath, constructor)

	if err := upsertWidget(doc, entry, cmd.Overwrite); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	rt.log.Debug().Str("code", cmd.Code).Str("manifest", manifestPath).Msg("manifest updated")

	if cmd.Builtin != "" {
		fmt.Fprintf(rt.out, "✓ Added %s to %s (reuses %s)\n", cmd.Code, manifestPath, cmd.Builtin)
		return nil
	}
	if err := writeProviderStub(providerPath, constructor, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(rt.out, "✓ Added %s to %s and generated %s\n", cmd.Code, manifestPath, providerPath)
	return nil
}

// manifestEntry describes the widget for the manifest. Builtin entries point
// at an existing spa provider; others name the generated constructor.
func (cmd *scaffoldCmd) manifestEntry(schema map[string]any, providerPath, constructor string) dashboard.ManifestWidget {
	provider := dashboard.ManifestProvider{
		Name:         cmd.Name + " Provider",
		Summary:      cmd.Description,
		DocsURL:      cmd.DocsURL,
		Capabilities: cmd.Capabilities,
	}
	if cmd.Builtin != "" {
		provider.Entry = dashboard.BuiltinEntryPrefix + cmd.Builtin
	} else {
		provider.Package = cmp.Or(cmd.Package, filepath.ToSlash(filepath.Dir(providerPath)))
		provider.Entry = provider.Package + "." + constructor
	}
	return dashboard.ManifestWidget{
		Definition: dashboard.WidgetDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Schema:      schema,
		},
		Provider:    provider,
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("spactl: widget code %s must contain at least one '.' segment", cmd.Code)
	}
	if cmd.Builtin == "" {
		return nil
	}
	for _, def := range dashboard.DefaultWidgetDefinitions() {
		if def.Code == cmd.Builtin {
			return nil
		}
	}
	return fmt.Errorf("spactl: %s is not a built-in spa widget", cmd.Builtin)
}

func (cmd *scaffoldCmd) providerPath() string {
	if cmd.ProviderOut != "" {
		return cmd.ProviderOut
	}
	return filepath.Join("internal", "widgets", strcase.ToSnake(deriveBaseName(cmd.Code))+".go")
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("spactl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("spactl: parse schema JSON: %w", err)
	}
	return schema, nil
}

// upsertWidget adds entry, or replaces the entry with the same code when
// overwrite is set, and keeps widgets ordered by code.
func upsertWidget(doc *dashboard.WidgetManifestDocument, entry dashboard.ManifestWidget, overwrite bool) error {
	code := entry.Definition.Code
	idx := slices.IndexFunc(doc.Widgets, func(w dashboard.ManifestWidget) bool { return w.Definition.Code == code })
	switch {
	case idx < 0:
		doc.Widgets = append(doc.Widgets, entry)
	case !overwrite:
		return fmt.Errorf("spactl: manifest already defines widget %s (use --overwrite to replace)", code)
	default:
		doc.Widgets[idx] = entry
	}
	slices.SortFunc(doc.Widgets, func(a, b dashboard.ManifestWidget) int {
		return strings.Compare(a.Definition.Code, b.Definition.Code)
	})
	return doc.Validate()
}

func loadOrInitManifest(path string) (*dashboard.WidgetManifestDocument, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return dashboard.ReadManifest(path)
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("spactl: stat manifest: %w", err)
	}
	return &dashboard.WidgetManifestDocument{
		Version: dashboard.ManifestVersion,
		Name:    strcase.ToKebab(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))),
		Widgets: []dashboard.ManifestWidget{},
		Source:  path,
	}, nil
}

func writeManifest(path string, doc *dashboard.WidgetManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("spactl: mkdir %s: %w", filepath.Dir(path), err)
	}
	out := *doc
	out.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("spactl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("spactl: write manifest: %w", err)
	}
	return nil
}

const providerStub = `package %[1]s

import (
	"cmp"
	"context"

	"%[2]s"
)

// %[3]s serves the %[4]s widget from the spa reports.
func %[3]s(src dashboard.ReportSource) dashboard.Provider {
	return dashboard.ProviderFunc(func(ctx context.Context, meta dashboard.WidgetContext) (dashboard.WidgetData, error) {
		overview, err := src.Overview(ctx)
		if err != nil {
			return nil, err
		}
		return dashboard.WidgetData{
			"kind":          "metrics",
			"total_revenue": overview.Services.TotalRevenue,
			"patients":      overview.Patients.Total,
		}, nil
	})
}
`

func writeProviderStub(path, constructor, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("spactl: provider file %s already exists (use --overwrite or --provider-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("spactl: mkdir provider dir: %w", err)
	}
	pkg := strings.ReplaceAll(strcase.ToSnake(filepath.Base(filepath.Dir(path))), "_", "")
	if pkg == "" || pkg == "." {
		pkg = "widgets"
	}
	content, err := format.Source(fmt.Appendf(nil, providerStub, pkg, dashboardPackage, constructor, code))
	if err != nil {
		return fmt.Errorf("spactl: format provider stub: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("spactl: write provider stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToPascal(slug)
}
