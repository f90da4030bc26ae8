package dashboard

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Supported chart types.
const (
	ChartBar     = "bar"
	ChartLine    = "line"
	ChartPie     = "pie"
	ChartScatter = "scatter"
	ChartGauge   = "gauge"
)

const (
	defaultChartHeight = "360px"
	// DefaultEChartsAssetsHost serves the echarts runtime and themes.
	DefaultEChartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
)

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartSeries is a set of values plotted for a given legend entry.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint is an individual value, optionally labeled. Pair carries x/y
// values for scatter charts.
type ChartPoint struct {
	Label string    `json:"label,omitempty"`
	Value float64   `json:"value"`
	Pair  []float64 `json:"pair,omitempty"`
}

// ChartSpec is the data a chart renders.
type ChartSpec struct {
	Title    string        `json:"title,omitempty"`
	Subtitle string        `json:"subtitle,omitempty"`
	XAxis    []string      `json:"x_axis,omitempty"`
	Series   []ChartSeries `json:"series"`
}

// ChartSource produces chart data for a widget instance.
type ChartSource func(ctx context.Context, meta WidgetContext) (ChartSpec, error)

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// EChartsProvider renders server-side chart HTML from a ChartSource.
type EChartsProvider struct {
	chartType     string
	source        ChartSource
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.theme = theme
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost points the echarts runtime at another host.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = host
	}
}

// NewEChartsProvider builds a provider for a specific chart type.
func NewEChartsProvider(chartType string, source ChartSource, options ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType:  strings.ToLower(chartType),
		source:     source,
		cache:      sharedChartCache,
		theme:      types.ThemeWesteros,
		assetsHost: DefaultEChartsAssetsHost,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// ChartType reports the rendered chart type.
func (p *EChartsProvider) ChartType() string {
	return p.chartType
}

// chartView is what a widget configuration changes about a rendered chart.
type chartView struct {
	title     string
	subtitle  string
	theme     string
	showTitle bool
}

func (p *EChartsProvider) view(ctx context.Context, meta WidgetContext, spec ChartSpec) chartView {
	cfg := meta.Instance.Configuration
	title := cmp.Or(stringOr(cfg, "title", spec.Title), "Chart")
	return chartView{
		title: translateOrFallback(ctx, meta.Translator,
			"dashboard.widget."+meta.Instance.DefinitionID+".title", meta.Viewer.Locale, title, nil),
		subtitle:  stringOr(cfg, "subtitle", spec.Subtitle),
		theme:     cmp.Or(stringOr(cfg, "theme", ""), p.resolveTheme(meta.Viewer)),
		showTitle: boolOr(cfg, "show_chart_title", false),
	}
}

// Fetch renders the source's chart to HTML. Renders are cached by widget,
// chart type, theme and a hash of the configuration and data, so an unchanged
// report is served from the cache.
func (p *EChartsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, errors.New("dashboard: chart source is required")
	}
	spec, err := p.source(ctx, meta)
	if err != nil {
		return nil, err
	}
	if len(spec.Series) == 0 {
		return nil, errors.New("dashboard: chart series is required")
	}
	spec = localizeSpec(ctx, meta, spec)
	view := p.view(ctx, meta, spec)
	chartTitle := ""
	if view.showTitle {
		chartTitle = view.title
	}

	cfg := meta.Instance.Configuration
	key := strings.Join([]string{
		meta.Instance.DefinitionID, meta.Instance.ID, p.chartType, view.theme,
		hashOf(map[string]any{"config": cfg, "spec": spec, "title": chartTitle}),
	}, ":")
	render := func() (string, error) { return p.render(chartTitle, view.subtitle, spec, view.theme) }
	var html string
	if p.cache != nil {
		html, err = p.cache.GetOrRender(key, render)
	} else {
		html, err = render()
	}
	if err != nil {
		return nil, err
	}

	data := WidgetData{
		"kind":       kindChart,
		"chart_html": html,
		"chart_type": p.chartType,
		"title":      view.title,
		"subtitle":   view.subtitle,
		"theme":      view.theme,
		"series":     spec.Series,
	}
	if note := stringOr(cfg, "footer_note", ""); note != "" {
		data["footer_note"] = note
	}
	if boolOr(cfg, "dynamic", false) {
		data["dynamic"] = true
		if refresh := stringOr(cfg, "refresh_endpoint", ""); refresh != "" {
			data["refresh_endpoint"] = refresh
		}
	}
	return data, nil
}

func (p *EChartsProvider) render(title, subtitle string, spec ChartSpec, theme string) (string, error) {
	var chart interface{ Render(io.Writer) error }
	global := p.globalChartOptions(title, subtitle, theme)
	switch p.chartType {
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(axisOrLabels(spec))
		for _, s := range spec.Series {
			bar.AddSeries(s.Name, mapPoints(s.Points, func(_ int, pt ChartPoint) opts.BarData {
				return opts.BarData{Name: pt.Label, Value: pt.Value}
			}))
		}
		chart = bar
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(axisOrLabels(spec))
		for _, s := range spec.Series {
			line.AddSeries(s.Name, mapPoints(s.Points, func(_ int, pt ChartPoint) opts.LineData {
				return opts.LineData{Name: pt.Label, Value: pt.Value}
			}))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		chart = line
	case ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		for _, s := range spec.Series {
			pie.AddSeries(s.Name, mapPoints(s.Points, func(i int, pt ChartPoint) opts.PieData {
				return opts.PieData{Name: cmp.Or(pt.Label, fmt.Sprintf("Slice %d", i+1)), Value: pt.Value}
			}))
		}
		chart = pie
	case ChartScatter:
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(global...)
		for _, s := range spec.Series {
			scatter.AddSeries(s.Name, mapPoints(s.Points, func(i int, pt ChartPoint) opts.ScatterData {
				value := []float64{float64(i + 1), pt.Value}
				if len(pt.Pair) >= 2 {
					value = pt.Pair[:2]
				}
				return opts.ScatterData{Name: pt.Label, Value: value}
			}))
		}
		chart = scatter
	case ChartGauge:
		// gauges plot the first point of each series, e.g. room occupancy.
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(global...)
		for _, s := range spec.Series {
			if len(s.Points) > 0 {
				gauge.AddSeries(s.Name, []opts.GaugeData{{Name: s.Points[0].Label, Value: s.Points[0].Value}})
			}
		}
		chart = gauge
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type %q", p.chartType)
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return "", fmt.Errorf("dashboard: render chart: %w", err)
	}
	return buf.String(), nil
}

func mapPoints[T any](points []ChartPoint, fn func(int, ChartPoint) T) []T {
	out := make([]T, len(points))
	for i, pt := range points {
		out[i] = fn(i, pt)
	}
	return out
}

func (p *EChartsProvider) globalChartOptions(title, subtitle, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{Theme: theme, Width: "100%", Height: defaultChartHeight}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (p *EChartsProvider) resolveTheme(viewer ViewerContext) string {
	if p.themeResolver != nil {
		if theme := p.themeResolver(viewer); theme != "" {
			return theme
		}
	}
	return cmp.Or(p.theme, types.ThemeWesteros)
}

// localizeSpec translates axis labels and series names. Labels are their own
// translation keys, e.g. a service name or a weekday.
func localizeSpec(ctx context.Context, meta WidgetContext, spec ChartSpec) ChartSpec {
	if meta.Translator == nil {
		return spec
	}
	tr := func(label string) string {
		if label == "" {
			return label
		}
		return translateOrFallback(ctx, meta.Translator, label, meta.Viewer.Locale, label, nil)
	}
	if len(spec.XAxis) > 0 {
		axis := make([]string, len(spec.XAxis))
		for i, label := range spec.XAxis {
			axis[i] = tr(label)
		}
		spec.XAxis = axis
	}
	series := make([]ChartSeries, len(spec.Series))
	for i, s := range spec.Series {
		series[i] = s
		series[i].Name = tr(s.Name)
	}
	spec.Series = series
	return spec
}

// axisOrLabels falls back to the point labels of the longest series.
func axisOrLabels(spec ChartSpec) []string {
	if len(spec.XAxis) > 0 {
		return spec.XAxis
	}
	var labels []string
	for _, s := range spec.Series {
		if len(s.Points) <= len(labels) {
			continue
		}
		labels = mapPoints(s.Points, func(i int, pt ChartPoint) string {
			return cmp.Or(pt.Label, fmt.Sprintf("Item %d", i+1))
		})
	}
	return labels
}
