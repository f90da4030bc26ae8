package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-spa-dashboard/components/dashboard"
	"github.com/goliatone/go-spa-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-spa-dashboard/components/reports"
)

func testEnv() (*env, *bytes.Buffer) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	var out bytes.Buffer
	return &env{
		reports: reports.NewService(reports.Options{Now: func() time.Time { return now }}),
		log:     zerolog.Nop(),
		out:     &out,
	}, &out
}

func TestReportCommandPrintsJSON(t *testing.T) {
	rt, out := testEnv()
	cmd := &reportCmd{Name: "promotions", Window: "24h"}
	require.NoError(t, cmd.Run(context.Background(), rt))

	var payload struct {
		Impact struct {
			Total float64 `json:"total"`
		} `json:"impact"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.InDelta(t, 8700, payload.Impact.Total, 0.001)
}

func TestReportCommandListsKnownReports(t *testing.T) {
	rt, _ := testEnv()
	err := (&reportCmd{Name: "payroll"}).Run(context.Background(), rt)
	require.ErrorIs(t, err, queries.ErrUnknownReport)
	assert.Contains(t, err.Error(), "gift-cards")
}

func TestExportCommandWritesWorkbook(t *testing.T) {
	rt, out := testEnv()
	target := filepath.Join(t.TempDir(), "reports", "spa.xlsx")
	require.NoError(t, (&exportCmd{Out: target, Sheet: []string{"staff"}}).Run(context.Background(), rt))
	assert.Contains(t, out.String(), "spa.xlsx")

	f, err := excelize.OpenFile(target)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Staff"}, f.GetSheetList())

	err = (&exportCmd{Out: filepath.Join(t.TempDir(), "spa.csv")}).Run(context.Background(), rt)
	require.Error(t, err)
}

func TestScaffoldBuiltinWidget(t *testing.T) {
	rt, out := testEnv()
	manifest := filepath.Join(t.TempDir(), "front-desk.yaml")
	cmd := &scaffoldCmd{
		Code:         "spa.widget.vip_patients",
		Name:         "VIP Patients",
		Description:  "High value patients",
		Category:     "patients",
		ManifestPath: manifest,
		Builtin:      dashboard.WidgetPatientStats,
		Tag:          []string{"patients"},
	}
	require.NoError(t, cmd.Run(context.Background(), rt))
	assert.Contains(t, out.String(), "reuses")

	doc, err := dashboard.ReadManifest(manifest)
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)
	assert.Equal(t, "front-desk", doc.Name)
	assert.Equal(t, dashboard.BuiltinEntryPrefix+dashboard.WidgetPatientStats, doc.Widgets[0].Provider.Entry)

	reg := dashboard.NewRegistry()
	require.NoError(t, reg.LoadManifestDocument(doc))
	_, ok := reg.Provider("spa.widget.vip_patients")
	assert.True(t, ok)

	// the same code again needs --overwrite
	require.Error(t, cmd.Run(context.Background(), rt))
	cmd.Overwrite = true
	require.NoError(t, cmd.Run(context.Background(), rt))
}

func TestScaffoldGeneratesProviderStub(t *testing.T) {
	rt, _ := testEnv()
	dir := t.TempDir()
	providerOut := filepath.Join(dir, "widgets", "room_usage.go")
	cmd := &scaffoldCmd{
		Code:         "acme.widget.room_usage",
		Name:         "Room Usage",
		Description:  "Rooms booked per day",
		Category:     "charts",
		ManifestPath: filepath.Join(dir, "manifest.yaml"),
		Package:      "example.com/acme/widgets",
		ProviderOut:  providerOut,
	}
	require.NoError(t, cmd.Run(context.Background(), rt))

	src, err := os.ReadFile(providerOut)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package widgets")
	assert.Contains(t, string(src), "func NewRoomUsageProvider(src dashboard.ReportSource) dashboard.Provider")

	doc, err := dashboard.ReadManifest(cmd.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, "example.com/acme/widgets.NewRoomUsageProvider", doc.Widgets[0].Provider.Entry)
}

func TestScaffoldRejectsUnknownBuiltin(t *testing.T) {
	rt, _ := testEnv()
	cmd := &scaffoldCmd{Code: "spa.widget.x", Name: "X", Description: "x", ManifestPath: filepath.Join(t.TempDir(), "m.yaml"), Builtin: "spa.widget.missing"}
	require.Error(t, cmd.Run(context.Background(), rt))

	cmd = &scaffoldCmd{Code: "nodots", Name: "X", Description: "x", ManifestPath: filepath.Join(t.TempDir(), "m.yaml")}
	require.Error(t, cmd.Run(context.Background(), rt))
}
