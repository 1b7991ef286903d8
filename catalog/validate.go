package catalog

import (
	"fmt"
)

// maxConditionDepth bounds condition tree nesting. Conditions arrive as
// JSON so true cycles cannot occur, but the bound rejects pathological
// nesting before the evaluator ever recurses into it.
const maxConditionDepth = 16

// ValidationError reports why a scheme definition was rejected. The
// rule index is -1 when the problem is outside the rule list.
type ValidationError struct {
	SchemeID  string
	RuleIndex int
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.RuleIndex < 0 {
		return fmt.Sprintf("scheme %q: %s", e.SchemeID, e.Reason)
	}
	return fmt.Sprintf("scheme %q rule %d: %s", e.SchemeID, e.RuleIndex, e.Reason)
}

// ValidateScheme checks a parsed scheme definition. A non-nil error
// means the scheme must be excluded from the active catalog; loading of
// the remaining schemes is unaffected.
func ValidateScheme(s *Scheme) error {
	fail := func(ruleIdx int, format string, args ...any) error {
		return &ValidationError{SchemeID: s.ID, RuleIndex: ruleIdx, Reason: fmt.Sprintf(format, args...)}
	}

	if s.ID == "" {
		return fail(-1, "scheme_id is required")
	}
	if s.Name == "" {
		return fail(-1, "name is required")
	}
	if s.PriorityWeight < 0 {
		return fail(-1, "priority_weight must not be negative")
	}

	for i := range s.Rules {
		r := &s.Rules[i]
		switch r.Severity {
		case SeverityMandatory, SeverityWeighted:
		default:
			return fail(i, "severity must be %q or %q, got %q", SeverityMandatory, SeverityWeighted, r.Severity)
		}
		if r.Severity == SeverityWeighted && r.Weight <= 0 {
			return fail(i, "weighted rule requires a positive weight, got %v", r.Weight)
		}
		if r.Description == "" {
			return fail(i, "description is required")
		}
		if err := validateCondition(&r.Condition, 0); err != nil {
			return fail(i, "%v", err)
		}
	}

	if err := validateBenefit(&s.Benefit, false); err != nil {
		return fail(-1, "benefit_spec: %v", err)
	}

	return nil
}

func validateCondition(c *Condition, depth int) error {
	if depth > maxConditionDepth {
		return fmt.Errorf("condition nesting exceeds maximum depth of %d", maxConditionDepth)
	}

	switch c.Op {
	case OpAnd, OpOr:
		if len(c.Children) == 0 {
			return fmt.Errorf("%s requires at least one child condition", c.Op)
		}
	case OpNot:
		if len(c.Children) != 1 {
			return fmt.Errorf("not requires exactly one child condition, got %d", len(c.Children))
		}
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte, OpBetween, OpIn, OpNotIn, OpAnyOf, OpAllOf, OpNoneOf:
		return validateLeaf(c)
	default:
		return fmt.Errorf("unknown operator %q", c.Op)
	}

	for i := range c.Children {
		if err := validateCondition(&c.Children[i], depth+1); err != nil {
			return err
		}
	}
	return nil
}

func validateLeaf(c *Condition) error {
	if len(c.Children) > 0 {
		return fmt.Errorf("%s must not have child conditions", c.Op)
	}
	if c.Field == "" {
		return fmt.Errorf("%s requires a profile field", c.Op)
	}
	_, kind, ok := CanonicalField(c.Field)
	if !ok {
		return fmt.Errorf("unknown profile field %q", c.Field)
	}

	switch c.Op {
	case OpEq, OpNeq:
		if kind == KindSet {
			return fmt.Errorf("%s cannot compare set-valued field %q, use any_of/all_of/none_of", c.Op, c.Field)
		}
		if c.Value == nil {
			return fmt.Errorf("%s requires a literal value", c.Op)
		}
		if kind == KindNumber {
			if _, ok := c.Value.(float64); !ok {
				return fmt.Errorf("%s on numeric field %q requires a numeric literal, got %T", c.Op, c.Field, c.Value)
			}
		}
		if kind == KindBool {
			if _, ok := c.Value.(bool); !ok {
				return fmt.Errorf("%s on boolean field %q requires a boolean literal, got %T", c.Op, c.Field, c.Value)
			}
		}

	case OpLt, OpLte, OpGt, OpGte:
		if kind != KindNumber {
			return fmt.Errorf("%s requires a numeric field, %q is not numeric", c.Op, c.Field)
		}
		if _, ok := c.Value.(float64); !ok {
			return fmt.Errorf("%s requires a numeric literal, got %T", c.Op, c.Value)
		}

	case OpBetween:
		if kind != KindNumber {
			return fmt.Errorf("between requires a numeric field, %q is not numeric", c.Field)
		}
		if c.Low == nil || c.High == nil {
			return fmt.Errorf("between requires both low and high bounds")
		}
		if *c.Low > *c.High {
			return fmt.Errorf("between bounds are inverted: low %v > high %v", *c.Low, *c.High)
		}

	case OpIn, OpNotIn:
		if kind == KindSet {
			return fmt.Errorf("%s cannot test set-valued field %q, use any_of/all_of/none_of", c.Op, c.Field)
		}
		if len(c.Values) == 0 {
			return fmt.Errorf("%s requires a non-empty value set", c.Op)
		}

	case OpAnyOf, OpAllOf, OpNoneOf:
		if kind != KindSet {
			return fmt.Errorf("%s requires a set-valued field, %q is not", c.Op, c.Field)
		}
		if len(c.Values) == 0 {
			return fmt.Errorf("%s requires a non-empty value set", c.Op)
		}
	}

	for _, v := range c.Values {
		switch v.(type) {
		case string, float64, bool:
		default:
			return fmt.Errorf("%s value set may only contain scalars, got %T", c.Op, v)
		}
	}
	return nil
}

// validateBenefit checks a benefit spec. Nested specs inside a
// conditional case may not themselves be conditional.
func validateBenefit(b *BenefitSpec, nested bool) error {
	switch b.Type {
	case BenefitFixed:
		if b.Amount < 0 {
			return fmt.Errorf("fixed amount must not be negative, got %v", b.Amount)
		}

	case BenefitPercentage:
		if b.BaseField == "" {
			return fmt.Errorf("percentage requires a base_field")
		}
		_, kind, ok := CanonicalField(b.BaseField)
		if !ok {
			return fmt.Errorf("percentage base_field %q is not a recognized profile field", b.BaseField)
		}
		if kind != KindNumber {
			return fmt.Errorf("percentage base_field %q must be numeric", b.BaseField)
		}
		if b.Rate <= 0 {
			return fmt.Errorf("percentage requires a positive rate, got %v", b.Rate)
		}
		if b.Cap != nil && *b.Cap < 0 {
			return fmt.Errorf("percentage cap must not be negative, got %v", *b.Cap)
		}

	case BenefitTiered:
		if b.TierField == "" {
			return fmt.Errorf("tiered requires a tier_field")
		}
		_, kind, ok := CanonicalField(b.TierField)
		if !ok {
			return fmt.Errorf("tiered tier_field %q is not a recognized profile field", b.TierField)
		}
		if kind != KindNumber {
			return fmt.Errorf("tiered tier_field %q must be numeric", b.TierField)
		}
		if len(b.Tiers) == 0 {
			return fmt.Errorf("tiered requires at least one breakpoint")
		}

	case BenefitConditional:
		if nested {
			return fmt.Errorf("conditional specs cannot be nested")
		}
		if len(b.Cases) == 0 {
			return fmt.Errorf("conditional requires at least one case")
		}
		for i := range b.Cases {
			if err := validateCondition(&b.Cases[i].When, 0); err != nil {
				return fmt.Errorf("case %d condition: %v", i, err)
			}
			if err := validateBenefit(&b.Cases[i].Then, true); err != nil {
				return fmt.Errorf("case %d: %v", i, err)
			}
		}
		if b.Default != nil {
			if err := validateBenefit(b.Default, true); err != nil {
				return fmt.Errorf("default: %v", err)
			}
		}

	default:
		return fmt.Errorf("unknown benefit type %q", b.Type)
	}
	return nil
}
