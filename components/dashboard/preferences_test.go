package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryPreferenceStoreKeepsViewerLocale(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()
	frontDesk := ViewerContext{UserID: "front-desk", Locale: "es"}

	require.NoError(t, store.SaveLayoutOverrides(ctx, frontDesk, LayoutOverrides{
		AreaOrder: map[string][]string{AreaMain: {"revenue", "gift-cards"}},
		AreaRows: map[string][]LayoutRow{
			AreaMain: {{Widgets: []WidgetSlot{{ID: "revenue", Width: 8}, {ID: "gift-cards", Width: 4}}}},
		},
		HiddenWidgets: map[string]bool{"insights": true},
	}))

	got, err := store.LayoutOverrides(ctx, frontDesk)
	require.NoError(t, err)
	assert.Equal(t, "es", got.Locale)
	assert.Equal(t, []string{"revenue", "gift-cards"}, got.AreaOrder[AreaMain])
	assert.True(t, got.HiddenWidgets["insights"])
	require.Len(t, got.AreaRows[AreaMain], 1)
	assert.Equal(t, 8, got.AreaRows[AreaMain][0].Widgets[0].Width)

	other, err := store.LayoutOverrides(ctx, ViewerContext{UserID: "therapist"})
	require.NoError(t, err)
	assert.Empty(t, other.AreaOrder)
}
