package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/reports"
)

func TestNewRegistryBindsBuiltinWidgets(t *testing.T) {
	reg := NewRegistry()
	defs := reg.Definitions()
	require.Len(t, defs, len(DefaultWidgetDefinitions()))
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].Code, defs[i].Code)
	}
	for _, def := range defs {
		_, ok := reg.Provider(def.Code)
		assert.Truef(t, ok, "builtin %s has no provider", def.Code)
	}
}

func TestRegistryRedefinitionKeepsProvider(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{
		Code: WidgetGiftCards,
		Name: "Vouchers",
	}))
	def, _ := reg.Definition(WidgetGiftCards)
	assert.Equal(t, "Vouchers", def.Name)
	_, ok := reg.Provider(WidgetGiftCards)
	assert.True(t, ok)
}

func TestRegistryRejectsInvalidRegistrations(t *testing.T) {
	reg := NewRegistry()
	assert.ErrorIs(t, reg.RegisterDefinition(WidgetDefinition{}), errEmptyWidgetCode)
	assert.ErrorIs(t, reg.RegisterProvider("", ProviderFunc(nil)), errEmptyWidgetCode)
	assert.Error(t, reg.RegisterProvider(WidgetInsights, nil))
	assert.Error(t, reg.RegisterProvider("spa.widget.unknown", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, nil
	})))
}

func TestRegistryUseReportsServesStaffFromSource(t *testing.T) {
	catalog := analytics.SampleCatalog()
	catalog.Therapists = catalog.Therapists[:1]
	src := reports.NewService(reports.Options{Source: reports.StaticSource(catalog)})

	reg := NewRegistry()
	assert.Error(t, reg.UseReports(nil, nil))
	require.NoError(t, reg.UseReports(src, nil))

	provider, ok := reg.Provider(WidgetStaffLeaderboard)
	require.True(t, ok)
	data, err := provider.Fetch(context.Background(), WidgetContext{Instance: WidgetInstance{DefinitionID: WidgetStaffLeaderboard}})
	require.NoError(t, err)
	assert.Len(t, data["items"], 1)
}
