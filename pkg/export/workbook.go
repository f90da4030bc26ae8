// Package export writes spa reports to an Excel workbook, one sheet per
// report.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ettle/strcase"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/reports"
)

// Source is the report surface the workbook reads. *reports.Service
// satisfies it.
type Source interface {
	Overview(ctx context.Context) (analytics.Overview, error)
	Services(ctx context.Context) (analytics.ServiceSummary, error)
	Patients(ctx context.Context, query reports.PatientQuery) (reports.PatientReport, error)
	Staff(ctx context.Context) (analytics.StaffSummary, error)
	Promotions(ctx context.Context) (reports.PromotionReport, error)
	Insights(ctx context.Context, source string) (analytics.InsightGroups, error)
	GiftCards(ctx context.Context) (reports.GiftCardReport, error)
	Reminders(ctx context.Context) (reports.ReminderReport, error)
	Occupancy(ctx context.Context) (reports.OccupancyReport, error)
}

var _ Source = (*reports.Service)(nil)

// Sheet is one worksheet: a header row plus data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Key is the snake_case identifier used to select sheets.
func (s Sheet) Key() string {
	return strcase.ToSnake(s.Name)
}

type sheetBuilder struct {
	name  string
	build func(ctx context.Context, src Source) (Sheet, error)
}

var builders = []sheetBuilder{
	{name: "Summary", build: summarySheet},
	{name: "Services", build: servicesSheet},
	{name: "Patients", build: patientsSheet},
	{name: "Staff", build: staffSheet},
	{name: "Promotions", build: promotionsSheet},
	{name: "Insights", build: insightsSheet},
	{name: "Gift Cards", build: giftCardsSheet},
	{name: "Reminders", build: remindersSheet},
	{name: "Occupancy", build: occupancySheet},
}

// SheetKeys lists the selectable sheet keys in workbook order.
func SheetKeys() []string {
	keys := make([]string, len(builders))
	for i, b := range builders {
		keys[i] = Sheet{Name: b.name}.Key()
	}
	return keys
}

// Options narrows the export.
type Options struct {
	// Sheets limits the workbook to these keys. Empty exports every sheet.
	Sheets []string
}

var ErrUnknownSheet = errors.New("export: unknown sheet")

// Collect runs the selected reports and returns their sheets in workbook order.
func Collect(ctx context.Context, src Source, opts Options) ([]Sheet, error) {
	if src == nil {
		return nil, errors.New("export: report source is required")
	}
	wanted := map[string]bool{}
	for _, key := range opts.Sheets {
		key = strcase.ToSnake(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		wanted[key] = false
	}
	var sheets []Sheet
	for _, b := range builders {
		key := Sheet{Name: b.name}.Key()
		if len(wanted) > 0 {
			if _, ok := wanted[key]; !ok {
				continue
			}
			wanted[key] = true
		}
		sheet, err := b.build(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("export: %s: %w", key, err)
		}
		sheet.Name = b.name
		sheets = append(sheets, sheet)
	}
	for key, found := range wanted {
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSheet, key)
		}
	}
	return sheets, nil
}

// Build renders the selected reports into a new workbook. The caller closes it.
func Build(ctx context.Context, src Source, opts Options) (*excelize.File, error) {
	sheets, err := Collect(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E8F1EE"}},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("export: header style: %w", err)
	}
	for _, sheet := range sheets {
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if len(sheets) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("export: drop default sheet: %w", err)
		}
		if idx, err := f.GetSheetIndex(sheets[0].Name); err == nil && idx >= 0 {
			f.SetActiveSheet(idx)
		}
	}
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(ctx context.Context, src Source, opts Options, w io.Writer) error {
	f, err := Build(ctx, src, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	if _, err := f.NewSheet(sheet.Name); err != nil {
		return fmt.Errorf("export: new sheet %s: %w", sheet.Name, err)
	}
	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("export: %s header: %w", sheet.Name, err)
	}
	if err := f.SetRowStyle(sheet.Name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("export: %s header style: %w", sheet.Name, err)
	}
	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet.Name, i+1, err)
		}
	}
	if len(sheet.Header) > 0 {
		last, err := excelize.ColumnNumberToName(len(sheet.Header))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, "A", last, 18); err != nil {
			return fmt.Errorf("export: %s widths: %w", sheet.Name, err)
		}
	}
	return nil
}
