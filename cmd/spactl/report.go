package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-spa-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-spa-dashboard/pkg/export"
)

type reportCmd struct {
	Name   string `arg:"" help:"Report name: overview, services, service-revenue, patients, staff, promotions, insights, opportunities, gift-cards, reminders, reminders-due, occupancy."`
	Search string `help:"Patient search term."`
	Status string `help:"Patient status filter (active, inactive)."`
	Source string `help:"Insight source page filter."`
	Window string `default:"24h" help:"Reminder window for reminders-due (24h or 2h)."`
	Pretty bool   `default:"true" negatable:"" help:"Indent the JSON output."`
}

func (cmd *reportCmd) Run(ctx context.Context, rt *env) error {
	result, err := queries.NewReportQuery(rt.reports).Query(ctx, queries.ReportInput{
		Report: strings.TrimSpace(cmd.Name),
		Search: cmd.Search,
		Status: cmd.Status,
		Source: cmd.Source,
		Window: cmd.Window,
	})
	if err != nil {
		if errors.Is(err, queries.ErrUnknownReport) {
			return fmt.Errorf("spactl: %w (known: %s)", err, strings.Join(queries.ReportNames(), ", "))
		}
		return err
	}
	encoder := json.NewEncoder(rt.out)
	if cmd.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(result)
}

type exportCmd struct {
	Out   string   `required:"" type:"path" help:"Destination .xlsx file."`
	Sheet []string `help:"Limit the workbook to these sheets (summary, services, patients, staff, promotions, insights, gift_cards, reminders, occupancy)."`
}

func (cmd *exportCmd) Run(ctx context.Context, rt *env) error {
	if ext := strings.ToLower(filepath.Ext(cmd.Out)); ext != ".xlsx" {
		return fmt.Errorf("spactl: export target %s must end in .xlsx", cmd.Out)
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0o755); err != nil {
		return fmt.Errorf("spactl: mkdir %s: %w", filepath.Dir(cmd.Out), err)
	}
	f, err := export.Build(ctx, rt.reports, export.Options{Sheets: cmd.Sheet})
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(cmd.Out); err != nil {
		return fmt.Errorf("spactl: save %s: %w", cmd.Out, err)
	}
	rt.log.Info().Str("path", cmd.Out).Int("sheets", len(f.GetSheetList())).Msg("workbook written")
	fmt.Fprintf(rt.out, "✓ Wrote %s\n", cmd.Out)
	return nil
}
