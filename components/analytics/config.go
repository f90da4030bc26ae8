package analytics

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ScoreWeights blends revenue per hour and popularity into a service score.
// Each term is (value / reference) * weight.
type ScoreWeights struct {
	RevenuePerHourReference float64 `yaml:"revenuePerHourReference" json:"revenuePerHourReference"`
	RevenuePerHourWeight    float64 `yaml:"revenuePerHourWeight" json:"revenuePerHourWeight"`
	PopularityReference     float64 `yaml:"popularityReference" json:"popularityReference"`
	PopularityWeight        float64 `yaml:"popularityWeight" json:"popularityWeight"`
}

// PromotionImpact is the fixed monthly revenue attributed to each active rule kind.
type PromotionImpact struct {
	Package   float64 `yaml:"package" json:"package"`
	HappyHour float64 `yaml:"happyHour" json:"happyHour"`
	PeakPrice float64 `yaml:"peakPrice" json:"peakPrice"`
}

// For returns the impact constant for a promotion kind, 0 when unknown.
func (p PromotionImpact) For(kind PromotionKind) float64 {
	switch kind {
	case PromotionPackage:
		return p.Package
	case PromotionHappyHour:
		return p.HappyHour
	case PromotionPeakPrice:
		return p.PeakPrice
	default:
		return 0
	}
}

// Config exposes the presentation constants used by the aggregator.
type Config struct {
	Weights          ScoreWeights    `yaml:"weights" json:"weights"`
	PromotionImpact  PromotionImpact `yaml:"promotionImpact" json:"promotionImpact"`
	HighValueSpend   float64         `yaml:"highValueSpend" json:"highValueSpend"`
	TopPerformers    int             `yaml:"topPerformers" json:"topPerformers"`
	NeedsAttention   int             `yaml:"needsAttention" json:"needsAttention"`
	StaffTop         int             `yaml:"staffTop" json:"staffTop"`
	StaffDevelopment int             `yaml:"staffDevelopment" json:"staffDevelopment"`
}

const (
	DefaultRevenuePerHourReference = 150
	DefaultRevenuePerHourWeight    = 50
	DefaultPopularityReference     = 70
	DefaultPopularityWeight        = 50

	DefaultPackageImpact   = 1100
	DefaultHappyHourImpact = 1820
	DefaultPeakPriceImpact = 2340

	DefaultHighValueSpend = 500
)

// DefaultConfig returns the constants the dashboard ships with.
func DefaultConfig() Config {
	return Config{
		Weights: ScoreWeights{
			RevenuePerHourReference: DefaultRevenuePerHourReference,
			RevenuePerHourWeight:    DefaultRevenuePerHourWeight,
			PopularityReference:     DefaultPopularityReference,
			PopularityWeight:        DefaultPopularityWeight,
		},
		PromotionImpact: PromotionImpact{
			Package:   DefaultPackageImpact,
			HappyHour: DefaultHappyHourImpact,
			PeakPrice: DefaultPeakPriceImpact,
		},
		HighValueSpend:   DefaultHighValueSpend,
		TopPerformers:    3,
		NeedsAttention:   3,
		StaffTop:         3,
		StaffDevelopment: 2,
	}
}

// Validate rejects negative constants.
func (c Config) Validate() error {
	var errs []error
	check := func(name string, value float64) {
		if value < 0 {
			errs = append(errs, fmt.Errorf("analytics: %s must not be negative", name))
		}
	}
	check("weights.revenuePerHourReference", c.Weights.RevenuePerHourReference)
	check("weights.revenuePerHourWeight", c.Weights.RevenuePerHourWeight)
	check("weights.popularityReference", c.Weights.PopularityReference)
	check("weights.popularityWeight", c.Weights.PopularityWeight)
	check("promotionImpact.package", c.PromotionImpact.Package)
	check("promotionImpact.happyHour", c.PromotionImpact.HappyHour)
	check("promotionImpact.peakPrice", c.PromotionImpact.PeakPrice)
	check("highValueSpend", c.HighValueSpend)
	if c.TopPerformers < 0 || c.NeedsAttention < 0 || c.StaffTop < 0 || c.StaffDevelopment < 0 {
		errs = append(errs, errors.New("analytics: list sizes must not be negative"))
	}
	return errors.Join(errs...)
}

// LoadConfig decodes YAML overrides on top of DefaultConfig. Keys that are
// absent keep their default value.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("analytics: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
