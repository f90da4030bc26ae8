package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifestReadsProviderBlock(t *testing.T) {
	const payload = `
version: 1
name: front-desk-pack
widgets:
  - definition:
      code: spa.widget.room_usage
      name: Room Usage
      description: Treatment rooms booked per hour.
      category: charts
      schema:
        type: object
        properties:
          days:
            type: integer
    provider:
      name: Room usage provider
      summary: Reads bookings from the front desk system.
      entry: example.com/frontdesk/widgets.NewRoomUsageProvider
      package: example.com/frontdesk/widgets
      capabilities: ["json"]
    tags: ["rooms"]
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, doc.Version)
	require.Len(t, doc.Widgets, 1)

	widget := doc.Widgets[0]
	assert.Equal(t, "spa.widget.room_usage", widget.Definition.Code)
	assert.Equal(t, "charts", widget.Definition.Category)
	assert.Equal(t, "example.com/frontdesk/widgets.NewRoomUsageProvider", widget.Provider.Entry)
	assert.Equal(t, []string{"rooms"}, widget.Tags)
	_, builtin := widget.Provider.builtinTarget()
	assert.False(t, builtin)
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader("version: 1\nwidgets: []\nowner: spa\n"))
	require.Error(t, err)

	_, err = DecodeManifest(strings.NewReader(""))
	require.Error(t, err)

	_, err = DecodeManifest(strings.NewReader("version: 2\nwidgets: []\n"))
	require.ErrorContains(t, err, "unsupported manifest version")
}

func TestRegistryRecordsManifestProvider(t *testing.T) {
	reg := NewRegistry()
	err := reg.LoadManifestDocument(&WidgetManifestDocument{
		Version: ManifestVersion,
		Widgets: []ManifestWidget{{
			Definition: WidgetDefinition{Code: "spa.widget.room_usage", Name: "Room Usage"},
			Provider: ManifestProvider{
				Name:  "Room usage provider",
				Entry: "example.com/frontdesk/widgets.NewRoomUsageProvider",
			},
		}},
	})
	require.NoError(t, err)

	def, ok := reg.Definition("spa.widget.room_usage")
	require.True(t, ok)
	assert.Equal(t, "Room Usage", def.Name)

	meta, ok := reg.ProviderMetadata("spa.widget.room_usage")
	require.True(t, ok)
	assert.Equal(t, "Room usage provider", meta.Name)

	// external entries are recorded but only bound by the host application
	_, ok = reg.Provider("spa.widget.room_usage")
	assert.False(t, ok)
}

func TestManifestDuplicateCodes(t *testing.T) {
	const payload = `
widgets:
  - definition:
      code: dup.widget
      name: First
  - definition:
      code: dup.widget
      name: Second
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates widget code")
}

func TestDocsManifestsAreValid(t *testing.T) {
	dir := filepath.Join("..", "..", "docs", "manifests")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	codes := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := ReadManifest(path)
		require.NoErrorf(t, err, "manifest %s should parse", path)
		for _, widget := range doc.Widgets {
			if prev, exists := codes[widget.Definition.Code]; exists {
				t.Fatalf("widget code %s defined in both %s and %s", widget.Definition.Code, prev, path)
			}
			codes[widget.Definition.Code] = path
		}
	}
}

func TestManifestBuiltinProviderAlias(t *testing.T) {
	reg := NewRegistry()
	docs, err := reg.LoadManifestDir(filepath.Join("..", "..", "docs", "manifests"))
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	def, ok := reg.Definition("spa.widget.vip_patients")
	require.True(t, ok)
	assert.Equal(t, "Pacientes VIP", def.NameForLocale("es"))

	provider, ok := reg.Provider("spa.widget.vip_patients")
	require.True(t, ok)
	data, err := provider.Fetch(context.Background(), WidgetContext{Instance: WidgetInstance{
		DefinitionID:  "spa.widget.vip_patients",
		Configuration: map[string]any{"status": "active"},
	}})
	require.NoError(t, err)
	assert.Equal(t, kindMetrics, data["kind"])
}

func TestManifestUnknownBuiltin(t *testing.T) {
	reg := NewRegistry()
	err := reg.LoadManifestDocument(&WidgetManifestDocument{
		Version: ManifestVersion,
		Widgets: []ManifestWidget{{
			Definition: WidgetDefinition{Code: "spa.widget.ghost", Name: "Ghost"},
			Provider:   ManifestProvider{Entry: "builtin:spa.widget.missing"},
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown builtin provider")
}

func TestManifestValidateReportsFieldErrors(t *testing.T) {
	doc := &WidgetManifestDocument{
		Version: ManifestVersion,
		Widgets: []ManifestWidget{{
			Definition: WidgetDefinition{Code: "spa.widget.nameless"},
			Provider:   ManifestProvider{DocsURL: "not a url"},
		}},
	}
	err := doc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "url")

	doc.Widgets[0].Definition.Name = "Nameless"
	doc.Widgets[0].Provider.DocsURL = "https://spa.example/docs"
	assert.NoError(t, doc.Validate())
}
