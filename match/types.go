package match

import "github.com/kisansetu/schemematch/catalog"

// Outcome is the tri-state result of evaluating a condition. A failure
// caused by absent profile data is kept distinct from an explicit
// mismatch all the way into the explanation text.
type Outcome int

const (
	Pass Outcome = iota
	FailMismatch
	FailUnknown
)

// Status is the eligibility verdict for one scheme.
type Status string

const (
	StatusEligible          Status = "eligible"
	StatusPartiallyEligible Status = "partially_eligible"
	StatusIneligible        Status = "ineligible"
)

// Confidence grades how much missing or uncertain data underlies a
// score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// RuleResult is the outcome of one rule against one profile.
type RuleResult struct {
	Rule    *catalog.Rule
	Outcome Outcome
}

// SchemeEvaluation aggregates the per-rule results for one scheme. It
// lives for the duration of a single request and is never persisted.
type SchemeEvaluation struct {
	Scheme          *catalog.Scheme
	Results         []RuleResult
	Score           float64
	MandatoryFailed bool
	HasUnknown      bool
	Status          Status
	Confidence      Confidence
	Benefit         float64
	BenefitFlagged  bool
}

// Request is one match request: a profile plus presentation knobs.
type Request struct {
	Profile           catalog.FarmerProfile `json:"profile"`
	TopK              int                   `json:"top_k"`
	Language          string                `json:"language"`
	IncludeIneligible bool                  `json:"include_ineligible"`
}

// Recommendation is one ranked scheme in the response.
type Recommendation struct {
	SchemeID          string     `json:"scheme_id"`
	Name              string     `json:"name"`
	Category          string     `json:"category,omitempty"`
	Department        string     `json:"department,omitempty"`
	Score             float64    `json:"score"`
	EligibilityStatus Status     `json:"eligibility_status"`
	Confidence        Confidence `json:"confidence"`
	BenefitEstimate   float64    `json:"benefit_estimate"`
	MatchedRules      []string   `json:"matched_rules"`
	FailingRules      []string   `json:"failing_rules"`
	RequiredDocuments []string   `json:"required_documents,omitempty"`
	Explanation       string     `json:"explanation"`
}

// Response is the full answer to one match request.
type Response struct {
	TotalSchemesEvaluated int              `json:"total_schemes_evaluated"`
	Recommendations       []Recommendation `json:"recommendations"`
	ProcessingTimeMS      int64            `json:"processing_time_ms"`
}
