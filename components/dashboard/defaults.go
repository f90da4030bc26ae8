package dashboard

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
)

var defaultAreaDefinitions = []WidgetAreaDefinition{
	{Code: AreaMain, Name: "Spa Dashboard (Main)", Description: "Revenue, services and charts"},
	{Code: AreaSidebar, Name: "Spa Dashboard (Sidebar)", Description: "Activity and insights"},
	{Code: AreaFooter, Name: "Spa Dashboard (Footer)", Description: "Promotions and reminders"},
}

var chartThemes = []string{
	types.ThemeWesteros,
	types.ThemeWalden,
	types.ThemeWonderland,
	types.ThemeChalk,
	types.ThemeMacarons,
	types.ThemeVintage,
}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:                 WidgetRevenueOverview,
		Name:                 "Revenue Overview",
		NameLocalized:        map[string]string{"es": "Resumen de ingresos"},
		Description:          "Monthly revenue, net profit and promotion impact",
		DescriptionLocalized: map[string]string{"es": "Ingresos mensuales, beneficio neto e impacto de promociones"},
		Category:             "revenue",
		Schema: objectSchema(map[string]any{
			"show_opportunities": map[string]any{"type": "boolean", "default": true},
		}),
	},
	{
		Code:          WidgetServicePerformance,
		Name:          "Service Performance",
		NameLocalized: map[string]string{"es": "Rendimiento de servicios"},
		Description:   "Top performers and services needing attention",
		Category:      "services",
		Schema: objectSchema(map[string]any{
			"view":  map[string]any{"type": "string", "enum": []string{"top", "attention", "all"}, "default": "top"},
			"limit": limitSchema(20, 3),
		}),
	},
	{
		Code:          WidgetPatientStats,
		Name:          "Patient Statistics",
		NameLocalized: map[string]string{"es": "Estadísticas de pacientes"},
		Description:   "Patient base size, spend and birthdays",
		Category:      "patients",
		Schema: objectSchema(map[string]any{
			"search": map[string]any{"type": "string"},
			"status": map[string]any{"type": "string", "enum": []string{"", "active", "inactive"}},
		}),
	},
	{
		Code:          WidgetStaffLeaderboard,
		Name:          "Staff Leaderboard",
		NameLocalized: map[string]string{"es": "Clasificación del equipo"},
		Description:   "Therapists ranked by performance",
		Category:      "staff",
		Schema: objectSchema(map[string]any{
			"limit": limitSchema(20, 5),
		}),
	},
	{
		Code:          WidgetPromotionImpact,
		Name:          "Promotion Impact",
		NameLocalized: map[string]string{"es": "Impacto de promociones"},
		Description:   "Estimated revenue impact of active promotions",
		Category:      "promotions",
		Schema: objectSchema(map[string]any{
			"kind": map[string]any{"type": "string", "enum": []string{"all", "package", "happy_hour", "peak_price"}, "default": "all"},
		}),
	},
	{
		Code:          WidgetInsights,
		Name:          "AI Insights",
		NameLocalized: map[string]string{"es": "Recomendaciones"},
		Description:   "Prioritized recommendations with estimated impact",
		Category:      "insights",
		Schema: objectSchema(map[string]any{
			"priority": map[string]any{"type": "string", "enum": []string{"all", "high", "medium", "low"}, "default": "all"},
			"source":   map[string]any{"type": "string"},
			"limit":    limitSchema(50, 5),
		}),
	},
	{
		Code:          WidgetGiftCards,
		Name:          "Gift Cards",
		NameLocalized: map[string]string{"es": "Tarjetas regalo"},
		Description:   "Sold value and outstanding balances",
		Category:      "revenue",
		Schema: objectSchema(map[string]any{
			"limit": limitSchema(50, 5),
		}),
	},
	{
		Code:          WidgetReminderROI,
		Name:          "Reminder ROI",
		NameLocalized: map[string]string{"es": "Retorno de recordatorios"},
		Description:   "Delivery and no-show savings per reminder channel",
		Category:      "reminders",
		Schema: objectSchema(map[string]any{
			"channel": map[string]any{"type": "string"},
		}),
	},
	{
		Code:                 WidgetRecentActivity,
		Name:                 "Recent Activity",
		NameLocalized:        map[string]string{"es": "Actividad reciente"},
		Description:          "Latest reminders and dashboard events",
		DescriptionLocalized: map[string]string{"es": "Últimos recordatorios y eventos"},
		Category:             "activity",
		Schema: objectSchema(map[string]any{
			"limit": limitSchema(50, 10),
		}),
	},
	{
		Code:        WidgetServiceRevenue,
		Name:        "Service Revenue",
		Description: "Monthly revenue and net profit per service",
		Category:    "charts",
		Schema:      chartSchema(map[string]any{"limit": limitSchema(20, 10)}),
	},
	{
		Code:        WidgetCategoryRevenue,
		Name:        "Revenue by Category",
		Description: "Share of monthly revenue per service category",
		Category:    "charts",
		Schema:      chartSchema(nil),
	},
	{
		Code:        WidgetOccupancy,
		Name:        "Occupancy",
		Description: "Booked capacity per hour across the week",
		Category:    "charts",
		Schema: chartSchema(map[string]any{
			"days": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		}),
	},
	{
		Code:        WidgetServiceMix,
		Name:        "Service Mix",
		Description: "Price against monthly bookings",
		Category:    "charts",
		Schema:      chartSchema(nil),
	},
	{
		Code:        WidgetStaffGauge,
		Name:        "Staff Performance",
		Description: "Team or therapist performance score",
		Category:    "charts",
		Schema: chartSchema(map[string]any{
			"therapist": map[string]any{"type": "string"},
		}),
	},
}

func objectSchema(props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func limitSchema(max, def int) map[string]any {
	return map[string]any{"type": "integer", "minimum": 1, "maximum": max, "default": def}
}

func chartSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"title":            map[string]any{"type": "string"},
		"subtitle":         map[string]any{"type": "string"},
		"footer_note":      map[string]any{"type": "string"},
		"theme":            map[string]any{"type": "string", "enum": chartThemes},
		"dynamic":          map[string]any{"type": "boolean", "default": false},
		"refresh_endpoint": map[string]any{"type": "string"},
		"show_chart_title": map[string]any{"type": "boolean", "default": false},
	}
	for key, value := range extra {
		props[key] = value
	}
	return objectSchema(props)
}

var defaultSeedConfigs = []AddWidgetRequest{
	{
		DefinitionID:  WidgetRevenueOverview,
		AreaCode:      AreaMain,
		Configuration: map[string]any{"show_opportunities": true},
	},
	{
		DefinitionID:  WidgetServicePerformance,
		AreaCode:      AreaMain,
		Configuration: map[string]any{"view": "top", "limit": 3},
	},
	{
		DefinitionID:  WidgetServiceRevenue,
		AreaCode:      AreaMain,
		Configuration: map[string]any{"limit": 10},
	},
	{
		DefinitionID:  WidgetRecentActivity,
		AreaCode:      AreaSidebar,
		Configuration: map[string]any{"limit": 5},
	},
	{
		DefinitionID:  WidgetInsights,
		AreaCode:      AreaSidebar,
		Configuration: map[string]any{"priority": "high"},
	},
	{
		DefinitionID:  WidgetPromotionImpact,
		AreaCode:      AreaFooter,
		Configuration: map[string]any{"kind": "all"},
	},
	{
		DefinitionID:  WidgetReminderROI,
		AreaCode:      AreaFooter,
		Configuration: map[string]any{},
	},
}

// DefaultAreaDefinitions returns copies of built-in area definitions.
func DefaultAreaDefinitions() []WidgetAreaDefinition {
	out := make([]WidgetAreaDefinition, len(defaultAreaDefinitions))
	copy(out, defaultAreaDefinitions)
	return out
}

// DefaultWidgetDefinitions returns copies of built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}

// DefaultSeedWidgets returns starter widget configurations.
func DefaultSeedWidgets() []AddWidgetRequest {
	out := make([]AddWidgetRequest, len(defaultSeedConfigs))
	for i, cfg := range defaultSeedConfigs {
		copyCfg := cfg
		copyCfg.Configuration = cloneMetadata(cfg.Configuration)
		if cfg.StartAt != nil {
			start := *cfg.StartAt
			copyCfg.StartAt = &start
		}
		if cfg.EndAt != nil {
			end := *cfg.EndAt
			copyCfg.EndAt = &end
		}
		out[i] = copyCfg
	}
	return out
}

// DefaultWidgetVisibility returns a permissive visibility configuration for seeds.
func DefaultWidgetVisibility() WidgetVisibility {
	now := time.Now().UTC()
	return WidgetVisibility{
		StartAt: &now,
	}
}
