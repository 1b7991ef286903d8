package match

import (
	"sort"

	"github.com/kisansetu/schemematch/catalog"
)

// EstimateBenefit computes the monetary estimate for a scheme. The
// second return is the low-confidence flag: true whenever the estimate
// degraded because of missing profile data or an unusable spec. The
// estimate is display/tie-break information only and never influences
// eligibility; failures yield 0 plus the flag, never an error.
func EstimateBenefit(s *catalog.Scheme, p *catalog.FarmerProfile) (float64, bool) {
	return estimateSpec(&s.Benefit, p)
}

func estimateSpec(spec *catalog.BenefitSpec, p *catalog.FarmerProfile) (float64, bool) {
	switch spec.Type {
	case catalog.BenefitFixed:
		return spec.Amount, false

	case catalog.BenefitPercentage:
		fv, ok := p.Field(spec.BaseField)
		if !ok || fv.Kind != catalog.KindNumber {
			return 0, true
		}
		amount := fv.Num * spec.Rate
		if spec.Cap != nil && amount > *spec.Cap {
			amount = *spec.Cap
		}
		if amount < 0 {
			return 0, true
		}
		return amount, false

	case catalog.BenefitTiered:
		fv, ok := p.Field(spec.TierField)
		if !ok || fv.Kind != catalog.KindNumber {
			return 0, true
		}
		if len(spec.Tiers) == 0 {
			return 0, true
		}
		tiers := make([]catalog.BenefitTier, len(spec.Tiers))
		copy(tiers, spec.Tiers)
		sort.Slice(tiers, func(a, b int) bool {
			return tiers[a].Threshold < tiers[b].Threshold
		})
		// Highest threshold not exceeding the value wins; below every
		// threshold the lowest tier applies.
		amount := tiers[0].Amount
		for _, t := range tiers {
			if fv.Num >= t.Threshold {
				amount = t.Amount
			}
		}
		return amount, false

	case catalog.BenefitConditional:
		sawUnknown := false
		for i := range spec.Cases {
			switch EvalCondition(&spec.Cases[i].When, p) {
			case Pass:
				amount, flagged := estimateSpec(&spec.Cases[i].Then, p)
				return amount, flagged || sawUnknown
			case FailUnknown:
				// The case may have applied with complete data; any
				// estimate chosen past it carries the flag.
				sawUnknown = true
			}
		}
		if spec.Default != nil {
			amount, flagged := estimateSpec(spec.Default, p)
			return amount, flagged || sawUnknown
		}
		return 0, true
	}

	return 0, true
}
