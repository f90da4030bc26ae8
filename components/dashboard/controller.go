package dashboard

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"sort"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html
var pageTemplates embed.FS

// Renderer executes a named page template.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// NewTemplateRenderer loads the embedded dashboard page and widget partials.
func NewTemplateRenderer() (Renderer, error) {
	pages, err := fs.Sub(pageTemplates, "templates")
	if err != nil {
		return nil, err
	}
	return template.NewRenderer(
		template.WithFS(pages),
		template.WithExtension(".html"),
	)
}

// LayoutResolver is the slice of Service the controller needs.
type LayoutResolver interface {
	ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error)
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service     LayoutResolver
	Renderer    Renderer
	Template    string
	Title       string
	Description string
	// AssetsHost serves the echarts runtime referenced by chart widgets.
	AssetsHost string
}

// Controller renders the spa dashboard page.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = "dashboard"
	}
	if opts.Title == "" {
		opts.Title = "Spa Dashboard"
	}
	if opts.AssetsHost == "" {
		opts.AssetsHost = DefaultEChartsAssetsHost
	}
	return &Controller{opts: opts}
}

// Render resolves the layout for a viewer and returns it to the caller.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.opts.Service == nil {
		return Layout{}, nil
	}
	return c.opts.Service.ConfigureLayout(ctx, viewer)
}

// RenderTemplate resolves the layout and renders the dashboard template to out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: renderer is required")
	}
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, c.LayoutPayload(layout, viewer), out)
	return err
}

// LayoutPayload flattens a layout into the template context.
func (c *Controller) LayoutPayload(layout Layout, viewer ViewerContext) map[string]any {
	areas := make([]map[string]any, 0, len(layout.Areas))
	codes := make([]string, 0, len(layout.Areas))
	for code := range layout.Areas {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		ri, rj := areaRank(codes[i]), areaRank(codes[j])
		if ri != rj {
			return ri < rj
		}
		return codes[i] < codes[j]
	})
	for _, code := range codes {
		widgets := make([]map[string]any, 0, len(layout.Areas[code]))
		for _, inst := range layout.Areas[code] {
			widgets = append(widgets, widgetPayload(inst))
		}
		areas = append(areas, map[string]any{
			"code":    code,
			"slug":    areaSlug(code),
			"widgets": widgets,
		})
	}
	return map[string]any{
		"title":       c.opts.Title,
		"description": c.opts.Description,
		"locale":      viewer.Locale,
		"viewer":      viewer,
		"assets_host": c.opts.AssetsHost,
		"areas":       areas,
	}
}

func widgetPayload(inst WidgetInstance) map[string]any {
	name, _ := inst.Metadata["name"].(string)
	if name == "" {
		name = inst.DefinitionID
	}
	width, _ := inst.Metadata["width"].(int)
	if width <= 0 {
		width = gridColumns
	}
	payload := map[string]any{
		"id":         inst.ID,
		"definition": inst.DefinitionID,
		"name":       name,
		"width":      width,
		"config":     inst.Configuration,
		"kind":       "",
		"data":       map[string]any{},
	}
	if data, ok := inst.Metadata["data"].(WidgetData); ok {
		payload["data"] = map[string]any(data)
		payload["kind"] = data["kind"]
		payload["cells"] = tableCells(data)
	}
	return payload
}

// tableCells orders row values by the column keys of a table payload.
func tableCells(data WidgetData) [][]any {
	columns, _ := data["columns"].([]map[string]any)
	rows, _ := data["rows"].([]map[string]any)
	if len(columns) == 0 {
		return nil
	}
	cells := make([][]any, len(rows))
	for i, row := range rows {
		cells[i] = make([]any, len(columns))
		for j, col := range columns {
			key, _ := col["key"].(string)
			cells[i][j] = row[key]
		}
	}
	return cells
}

func areaRank(code string) int {
	for i, area := range defaultAreas {
		if area == code {
			return i
		}
	}
	return len(defaultAreas)
}

func areaSlug(code string) string {
	for i := len(code) - 1; i >= 0; i-- {
		if code[i] == '.' {
			return code[i+1:]
		}
	}
	return code
}
