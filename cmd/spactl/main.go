package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
	"github.com/goliatone/go-spa-dashboard/components/reports"
	"github.com/goliatone/go-spa-dashboard/pkg/catalog"
	"github.com/goliatone/go-spa-dashboard/pkg/telemetry"
)

type cli struct {
	Config     string        `type:"existingfile" help:"YAML file overriding the analytics constants."`
	Catalog    string        `type:"existingfile" help:"Catalog snapshot (YAML or JSON). Defaults to the sample catalog."`
	CatalogURL string        `name:"catalog-url" env:"SPA_CATALOG_URL" help:"Booking API base URL serving GET /catalog."`
	APIKey     string        `name:"api-key" env:"SPA_CATALOG_API_KEY" help:"Bearer token for the booking API."`
	Timeout    time.Duration `default:"10s" help:"Booking API timeout."`
	LogLevel   string        `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level."`

	Report   reportCmd   `cmd:"" help:"Print a report as JSON."`
	Export   exportCmd   `cmd:"" help:"Write every report to an Excel workbook."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a spa widget definition to a manifest and optionally generate a provider stub."`
}

// env is shared by every subcommand through kong bindings.
type env struct {
	reports *reports.Service
	log     zerolog.Logger
	out     io.Writer
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("spactl"),
		kong.Description("Reports, exports and widget manifests for the spa dashboard."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	runtime, err := app.env(os.Stdout)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(runtime)
	ctx.FatalIfErrorf(err)
}

func (c *cli) env(out io.Writer) (*env, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("spactl: log level: %w", err)
	}
	log := telemetry.NewZerolog(telemetry.LoggerConfig{
		Level:   level,
		Output:  os.Stderr,
		Console: true,
		Service: "spactl",
	})
	cfg, err := c.analyticsConfig()
	if err != nil {
		return nil, err
	}
	source, err := c.catalogSource()
	if err != nil {
		return nil, err
	}
	return &env{
		reports: reports.NewService(reports.Options{
			Source:    source,
			Config:    cfg,
			Telemetry: telemetry.NewLogger(log),
		}),
		log: log,
		out: out,
	}, nil
}

func (c *cli) analyticsConfig() (*analytics.Config, error) {
	if c.Config == "" {
		return nil, nil
	}
	f, err := os.Open(c.Config)
	if err != nil {
		return nil, fmt.Errorf("spactl: open config: %w", err)
	}
	defer f.Close()
	cfg, err := analytics.LoadConfig(f)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// catalogSource picks the booking API, then a catalog file, then the sample
// catalog when neither is set. Remote and file catalogs are cached so an
// export reads them once.
func (c *cli) catalogSource() (reports.CatalogSource, error) {
	switch {
	case c.CatalogURL != "":
		client, err := catalog.NewHTTPClient(catalog.HTTPConfig{
			BaseURL:    c.CatalogURL,
			APIKey:     c.APIKey,
			HTTPClient: &http.Client{Timeout: c.Timeout},
		})
		if err != nil {
			return nil, err
		}
		return catalog.NewCachedClient(client, 0), nil
	case c.Catalog != "":
		return catalog.NewCachedClient(catalog.NewFileClient(c.Catalog), 0), nil
	default:
		return nil, nil
	}
}
