package analytics

// RevenueImpact is the estimated monthly uplift from active promotion rules.
type RevenueImpact struct {
	Packages    float64 `json:"packages"`
	HappyHours  float64 `json:"happyHours"`
	PeakPricing float64 `json:"peakPricing"`
	Total       float64 `json:"total"`

	ActivePackages    int `json:"activePackages"`
	ActiveHappyHours  int `json:"activeHappyHours"`
	ActivePeakPricing int `json:"activePeakPricing"`
}

// AggregateRevenueImpact counts active rules per kind and multiplies each
// count by its fixed impact. Inactive rules and unknown kinds contribute nothing.
func AggregateRevenueImpact(rules []PromotionRule, impact PromotionImpact) RevenueImpact {
	var out RevenueImpact
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		switch rule.Kind {
		case PromotionPackage:
			out.ActivePackages++
		case PromotionHappyHour:
			out.ActiveHappyHours++
		case PromotionPeakPrice:
			out.ActivePeakPricing++
		}
	}
	out.Packages = float64(out.ActivePackages) * impact.Package
	out.HappyHours = float64(out.ActiveHappyHours) * impact.HappyHour
	out.PeakPricing = float64(out.ActivePeakPricing) * impact.PeakPrice
	out.Total = out.Packages + out.HappyHours + out.PeakPricing
	return out
}

// FilterPromotions returns the rules of one kind, preserving order.
func FilterPromotions(rules []PromotionRule, kind PromotionKind) []PromotionRule {
	out := []PromotionRule{}
	for _, rule := range rules {
		if rule.Kind == kind {
			out = append(out, rule)
		}
	}
	return out
}

// PackageSavings is the discount a package gives against its list price.
// It returns 0 for rules that are not packages.
func PackageSavings(rule PromotionRule) float64 {
	if rule.Kind != PromotionPackage || rule.Percent >= 100 || rule.Price <= 0 {
		return 0
	}
	list := rule.Price / (1 - rule.Percent/100)
	return list - rule.Price
}
