package catalog

// Op identifies a condition operator. The operator set is closed: the
// evaluator switches exhaustively over these constants and the loader
// rejects anything else, so new operators cannot slip in untested.
type Op string

const (
	// Leaf comparators against a single profile field.
	OpEq      Op = "eq"
	OpNeq     Op = "neq"
	OpLt      Op = "lt"
	OpLte     Op = "lte"
	OpGt      Op = "gt"
	OpGte     Op = "gte"
	OpBetween Op = "between"
	OpIn      Op = "in"
	OpNotIn   Op = "not_in"

	// Set-overlap comparators for multi-valued profile fields.
	OpAnyOf  Op = "any_of"
	OpAllOf  Op = "all_of"
	OpNoneOf Op = "none_of"

	// Boolean combinators.
	OpAnd Op = "and"
	OpOr  Op = "or"
	OpNot Op = "not"
)

// Condition is one node of an eligibility condition tree. Exactly one
// shape is populated depending on Op: leaf comparators carry Field plus
// Value/Values/Low+High, combinators carry Children.
type Condition struct {
	Op       Op          `json:"op"`
	Field    string      `json:"field,omitempty"`
	Value    any         `json:"value,omitempty"`
	Values   []any       `json:"values,omitempty"`
	Low      *float64    `json:"low,omitempty"`
	High     *float64    `json:"high,omitempty"`
	Children []Condition `json:"children,omitempty"`
}

// IsCombinator reports whether the node combines child conditions
// rather than comparing a profile field.
func (c *Condition) IsCombinator() bool {
	return c.Op == OpAnd || c.Op == OpOr || c.Op == OpNot
}

// Severity distinguishes gatekeeper rules from score contributors.
type Severity string

const (
	// SeverityMandatory rules make the whole scheme ineligible when they
	// fail, regardless of the weighted score.
	SeverityMandatory Severity = "mandatory"
	// SeverityWeighted rules contribute proportionally to the score.
	SeverityWeighted Severity = "weighted"
)

// Rule is one eligibility predicate of a scheme.
type Rule struct {
	Description  string            `json:"description"`
	Translations map[string]string `json:"description_i18n,omitempty"`
	Severity     Severity          `json:"severity"`
	Weight       float64           `json:"weight,omitempty"`
	Condition    Condition         `json:"condition"`
}

// DescriptionIn returns the rule description for the given language,
// falling back to the default (English) description.
func (r *Rule) DescriptionIn(lang string) string {
	if t, ok := r.Translations[lang]; ok && t != "" {
		return t
	}
	return r.Description
}

// BenefitType identifies the benefit specification variant.
type BenefitType string

const (
	BenefitFixed       BenefitType = "fixed"
	BenefitPercentage  BenefitType = "percentage"
	BenefitTiered      BenefitType = "tiered"
	BenefitConditional BenefitType = "conditional"
)

// BenefitTier is one breakpoint of a tiered benefit: the amount applies
// from Threshold upward until the next breakpoint.
type BenefitTier struct {
	Threshold float64 `json:"threshold"`
	Amount    float64 `json:"amount"`
}

// BenefitCase overrides the benefit spec when its condition holds
// against the profile.
type BenefitCase struct {
	When Condition   `json:"when"`
	Then BenefitSpec `json:"then"`
}

// BenefitSpec is a tagged variant describing how to estimate a scheme's
// monetary benefit. Which fields apply depends on Type:
//
//	fixed:       Amount
//	percentage:  BaseField, Rate, optional Cap
//	tiered:      TierField, Tiers
//	conditional: Cases, optional Default
type BenefitSpec struct {
	Type      BenefitType   `json:"type"`
	Amount    float64       `json:"amount,omitempty"`
	BaseField string        `json:"base_field,omitempty"`
	Rate      float64       `json:"rate,omitempty"`
	Cap       *float64      `json:"cap,omitempty"`
	TierField string        `json:"tier_field,omitempty"`
	Tiers     []BenefitTier `json:"tiers,omitempty"`
	Cases     []BenefitCase `json:"cases,omitempty"`
	Default   *BenefitSpec  `json:"default,omitempty"`
}

// Scheme is one benefit program definition, immutable after loading.
type Scheme struct {
	ID                string            `json:"scheme_id"`
	Name              string            `json:"name"`
	Names             map[string]string `json:"name_i18n,omitempty"`
	Category          string            `json:"category,omitempty"`
	Department        string            `json:"department,omitempty"`
	State             *string           `json:"state,omitempty"` // nil means central/nationwide
	Active            bool              `json:"is_active"`
	PriorityWeight    float64           `json:"priority_weight"`
	Rules             []Rule            `json:"eligibility_rules"`
	RequiredDocuments []string          `json:"required_documents,omitempty"`
	Benefit           BenefitSpec       `json:"benefit_spec"`
}

// NameIn returns the scheme display name for the given language,
// falling back to the default name.
func (s *Scheme) NameIn(lang string) string {
	if n, ok := s.Names[lang]; ok && n != "" {
		return n
	}
	return s.Name
}
