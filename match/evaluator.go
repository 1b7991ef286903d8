package match

import (
	"strings"

	"github.com/kisansetu/schemematch/catalog"
)

// EvaluateScheme runs every rule of a scheme against a profile and
// aggregates score, status, confidence and benefit estimate. It is pure
// and side-effect-free: the same scheme and profile always produce the
// same evaluation.
func EvaluateScheme(s *catalog.Scheme, p *catalog.FarmerProfile) SchemeEvaluation {
	ev := SchemeEvaluation{Scheme: s}

	for i := range s.Rules {
		r := &s.Rules[i]
		outcome := EvalCondition(&r.Condition, p)
		ev.Results = append(ev.Results, RuleResult{Rule: r, Outcome: outcome})

		if outcome == FailUnknown {
			ev.HasUnknown = true
		}
		if outcome != Pass && r.Severity == catalog.SeverityMandatory {
			ev.MandatoryFailed = true
		}
	}

	ev.Benefit, ev.BenefitFlagged = EstimateBenefit(s, p)
	ev.Score = scoreRules(ev.Results)
	ev.Status = statusFor(ev.Score, ev.MandatoryFailed)
	ev.Confidence = confidenceFor(ev.Score, ev.HasUnknown, ev.BenefitFlagged)
	return ev
}

// EvalCondition walks a condition tree. The operator switch is
// exhaustive over the closed operator set; the loader guarantees no
// other operator reaches evaluation.
func EvalCondition(c *catalog.Condition, p *catalog.FarmerProfile) Outcome {
	switch c.Op {
	case catalog.OpAnd:
		// Fail fast on the first non-passing child, preserving whether
		// that child failed on missing data.
		for i := range c.Children {
			if out := EvalCondition(&c.Children[i], p); out != Pass {
				return out
			}
		}
		return Pass

	case catalog.OpOr:
		sawUnknown := false
		for i := range c.Children {
			switch EvalCondition(&c.Children[i], p) {
			case Pass:
				return Pass
			case FailUnknown:
				sawUnknown = true
			}
		}
		if sawUnknown {
			return FailUnknown
		}
		return FailMismatch

	case catalog.OpNot:
		// Negating missing data still leaves the answer unknown.
		switch EvalCondition(&c.Children[0], p) {
		case Pass:
			return FailMismatch
		case FailMismatch:
			return Pass
		default:
			return FailUnknown
		}

	default:
		return evalLeaf(c, p)
	}
}

func evalLeaf(c *catalog.Condition, p *catalog.FarmerProfile) Outcome {
	fv, ok := p.Field(c.Field)
	if !ok {
		return FailUnknown
	}

	passed := false
	switch c.Op {
	case catalog.OpEq:
		passed = scalarEquals(fv, c.Value)
	case catalog.OpNeq:
		passed = !scalarEquals(fv, c.Value)

	case catalog.OpLt:
		n, ok := literalNumber(c.Value)
		passed = ok && fv.Kind == catalog.KindNumber && fv.Num < n
	case catalog.OpLte:
		n, ok := literalNumber(c.Value)
		passed = ok && fv.Kind == catalog.KindNumber && fv.Num <= n
	case catalog.OpGt:
		n, ok := literalNumber(c.Value)
		passed = ok && fv.Kind == catalog.KindNumber && fv.Num > n
	case catalog.OpGte:
		n, ok := literalNumber(c.Value)
		passed = ok && fv.Kind == catalog.KindNumber && fv.Num >= n
	case catalog.OpBetween:
		passed = fv.Kind == catalog.KindNumber &&
			c.Low != nil && c.High != nil &&
			fv.Num >= *c.Low && fv.Num <= *c.High

	case catalog.OpIn:
		passed = scalarInSet(fv, c.Values)
	case catalog.OpNotIn:
		passed = !scalarInSet(fv, c.Values)

	case catalog.OpAnyOf:
		passed = setOverlap(fv.Set, c.Values) > 0
	case catalog.OpAllOf:
		passed = setOverlap(fv.Set, c.Values) == len(normalizeLiterals(c.Values))
	case catalog.OpNoneOf:
		passed = setOverlap(fv.Set, c.Values) == 0
	}

	if passed {
		return Pass
	}
	return FailMismatch
}

// scalarEquals compares a profile scalar with a rule literal. String
// comparison is case-insensitive; numbers compare as exact IEEE-754
// doubles with no tolerance.
func scalarEquals(fv catalog.FieldValue, literal any) bool {
	switch fv.Kind {
	case catalog.KindNumber:
		n, ok := literalNumber(literal)
		return ok && fv.Num == n
	case catalog.KindString:
		s, ok := literal.(string)
		return ok && strings.EqualFold(fv.Str, s)
	case catalog.KindBool:
		b, ok := literal.(bool)
		return ok && fv.Bool == b
	}
	return false
}

func scalarInSet(fv catalog.FieldValue, literals []any) bool {
	for _, lit := range literals {
		if scalarEquals(fv, lit) {
			return true
		}
	}
	return false
}

// setOverlap counts how many distinct rule literals appear in the
// profile's set, comparing case-insensitively.
func setOverlap(profileSet []string, literals []any) int {
	have := make(map[string]struct{}, len(profileSet))
	for _, v := range profileSet {
		have[strings.ToLower(v)] = struct{}{}
	}
	count := 0
	for _, lit := range normalizeLiterals(literals) {
		if _, ok := have[lit]; ok {
			count++
		}
	}
	return count
}

// normalizeLiterals lowercases string literals and deduplicates so a
// repeated value in a rule set cannot double-count toward all_of.
func normalizeLiterals(literals []any) []string {
	seen := make(map[string]struct{}, len(literals))
	out := make([]string, 0, len(literals))
	for _, lit := range literals {
		s, ok := lit.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(s)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func literalNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}
