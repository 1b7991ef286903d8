// Package match evaluates a farmer profile against the active scheme
// catalog and produces a ranked, explainable recommendation list. The
// whole pipeline is a deterministic function of (catalog snapshot,
// request): no state is kept between requests and no wall-clock value
// influences any result.
package match

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kisansetu/schemematch/catalog"
	"github.com/kisansetu/schemematch/explain"
	"github.com/kisansetu/schemematch/internal/metrics"
)

// DefaultTopK is the recommendation list length when the request does
// not specify one.
const DefaultTopK = 10

// DefaultLanguage is used when the request does not name a language.
const DefaultLanguage = "en"

// Matcher orchestrates evaluation of the full catalog for one request.
// All collaborators are injected; the matcher itself is stateless and
// safe for concurrent use.
type Matcher struct {
	catalog  *catalog.Manager
	renderer *explain.Renderer
	metrics  *metrics.Metrics
	workers  int
}

// NewMatcher creates a matcher. workers bounds per-request evaluation
// parallelism; zero or negative selects GOMAXPROCS. metrics may be nil.
func NewMatcher(cat *catalog.Manager, renderer *explain.Renderer, m *metrics.Metrics, workers int) *Matcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Matcher{catalog: cat, renderer: renderer, metrics: m, workers: workers}
}

// Match evaluates every scheme in the active snapshot against the
// request profile, ranks the results and renders explanations for the
// retained top-k only. A request with an empty profile still returns a
// well-formed response.
func (m *Matcher) Match(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	lang := req.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	snap := m.catalog.Snapshot()
	evals := make([]SchemeEvaluation, len(snap.Schemes))

	// Schemes are independent of one another: evaluate them in
	// parallel, each into its own slot so result order stays fixed.
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, scheme := range snap.Schemes {
		g.Go(func() error {
			evals[i] = EvaluateScheme(scheme, &req.Profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if m.metrics != nil {
		for i := range evals {
			if evals[i].BenefitFlagged {
				m.metrics.IncrementEstimationFlag()
			}
		}
	}

	// Total order: score desc, then priority_weight desc, then
	// scheme_id asc. Required for reproducible output.
	order := make([]int, len(evals))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ea, eb := &evals[order[a]], &evals[order[b]]
		if ea.Score != eb.Score {
			return ea.Score > eb.Score
		}
		if ea.Scheme.PriorityWeight != eb.Scheme.PriorityWeight {
			return ea.Scheme.PriorityWeight > eb.Scheme.PriorityWeight
		}
		return ea.Scheme.ID < eb.Scheme.ID
	})

	// Filter after sorting, truncate after filtering: top_k applies to
	// the final ranked list, never to the evaluation set.
	recommendations := make([]Recommendation, 0, topK)
	for _, idx := range order {
		ev := &evals[idx]
		if ev.Status == StatusIneligible && !req.IncludeIneligible {
			continue
		}
		if len(recommendations) == topK {
			break
		}
		recommendations = append(recommendations, m.render(ev, lang))
	}

	if m.metrics != nil {
		m.metrics.ObserveMatch(start)
	}

	return &Response{
		TotalSchemesEvaluated: len(snap.Schemes),
		Recommendations:       recommendations,
		ProcessingTimeMS:      time.Since(start).Milliseconds(),
	}, nil
}

// render produces the language-resolved recommendation for one retained
// scheme. Rendering happens only here, after ranking, so discarded
// schemes never pay for explanation text.
func (m *Matcher) render(ev *SchemeEvaluation, lang string) Recommendation {
	var matched, failing []string
	firstFailing := ""
	for _, rr := range ev.Results {
		desc := rr.Rule.DescriptionIn(lang)
		if rr.Outcome == Pass {
			matched = append(matched, desc)
			continue
		}
		text := m.renderer.FailureText(lang, desc, rr.Outcome == FailUnknown)
		failing = append(failing, text)
		if firstFailing == "" {
			firstFailing = text
		}
	}

	scheme := ev.Scheme
	return Recommendation{
		SchemeID:          scheme.ID,
		Name:              scheme.NameIn(lang),
		Category:          scheme.Category,
		Department:        scheme.Department,
		Score:             ev.Score,
		EligibilityStatus: ev.Status,
		Confidence:        ev.Confidence,
		BenefitEstimate:   ev.Benefit,
		MatchedRules:      matched,
		FailingRules:      failing,
		RequiredDocuments: scheme.RequiredDocuments,
		Explanation: m.renderer.Narrative(
			lang, string(ev.Status), scheme.NameIn(lang), ev.Benefit, firstFailing),
	}
}
