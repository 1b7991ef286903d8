package match

import (
	"math"

	"github.com/kisansetu/schemematch/catalog"
)

// scoreRules computes the 0-100 weighted score. Mandatory rules do not
// contribute weight; a scheme with no weighted rules scores 100 when
// every mandatory rule passes and 0 otherwise.
func scoreRules(results []RuleResult) float64 {
	var totalWeight, passedWeight float64
	mandatoryFailed := false

	for _, rr := range results {
		switch rr.Rule.Severity {
		case catalog.SeverityWeighted:
			totalWeight += rr.Rule.Weight
			if rr.Outcome == Pass {
				passedWeight += rr.Rule.Weight
			}
		case catalog.SeverityMandatory:
			if rr.Outcome != Pass {
				mandatoryFailed = true
			}
		}
	}

	if totalWeight == 0 {
		if mandatoryFailed {
			return 0
		}
		return 100
	}
	return round2(100 * passedWeight / totalWeight)
}

// statusFor derives the eligibility status. A failed mandatory rule
// overrides the weighted score entirely; the score is still reported
// for display.
func statusFor(score float64, mandatoryFailed bool) Status {
	if mandatoryFailed {
		return StatusIneligible
	}
	switch {
	case score >= 100:
		return StatusEligible
	case score > 0:
		return StatusPartiallyEligible
	default:
		return StatusIneligible
	}
}

// confidenceFor grades the result. Unknown-field outcomes or a degraded
// benefit estimate cap confidence at medium regardless of score: a high
// score from incomplete data must never claim high confidence.
func confidenceFor(score float64, hasUnknown, benefitFlagged bool) Confidence {
	if score >= 80 && !hasUnknown && !benefitFlagged {
		return ConfidenceHigh
	}
	if score >= 50 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// round2 rounds to two decimal places so scores serialize stably.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
