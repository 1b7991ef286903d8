// Package explain renders human-facing explanation text for evaluated
// schemes in the requested language, falling back to English when a
// translation is missing. Output is plain text with no markup so any
// presentation layer can consume it.
package explain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kisansetu/schemematch/internal/logger"
)

// Eligibility status values as they appear in match results.
const (
	StatusEligible   = "eligible"
	StatusPartial    = "partially_eligible"
	StatusIneligible = "ineligible"
)

// FallbackFunc is notified whenever a requested language had no
// template and English was used instead. The fallback is silent on the
// request path; this hook makes it observable in metrics.
type FallbackFunc func(language string)

// Renderer produces narrative explanations from the template tables.
type Renderer struct {
	onFallback FallbackFunc
}

// NewRenderer creates a renderer. onFallback may be nil.
func NewRenderer(onFallback FallbackFunc) *Renderer {
	return &Renderer{onFallback: onFallback}
}

// Languages lists the languages with native templates.
func Languages() []string {
	return []string{"en", "hi", "mr"}
}

// resolve picks the template set for a language, falling back to
// English. The fallback never fails the request but is logged and
// reported through the hook.
func (r *Renderer) resolve(lang string) templateSet {
	if ts, ok := templates[lang]; ok {
		return ts
	}
	logger.Warn("no explanation template for language, falling back to English", "language", lang)
	if r.onFallback != nil {
		r.onFallback(lang)
	}
	return templates["en"]
}

// Narrative assembles the explanation string for one scheme. status is
// one of the eligibility status values; firstFailing is the leading
// failing-rule text (already language-resolved) and may be empty.
func (r *Renderer) Narrative(lang, status, schemeName string, benefit float64, firstFailing string) string {
	ts := r.resolve(lang)

	reason := firstFailing
	if reason == "" {
		reason = ts.noReason
	}

	var format string
	switch status {
	case StatusEligible:
		format = ts.eligible
	case StatusPartial:
		format = ts.partial
	default:
		format = ts.ineligible
	}
	return fmt.Sprintf(format, schemeName, FormatAmount(benefit), reason)
}

// FailureText renders one failing-rule description. A failure caused by
// missing profile data is wrapped so the reader can tell "you do not
// qualify" apart from "we do not have enough information".
func (r *Renderer) FailureText(lang, description string, unknown bool) string {
	if !unknown {
		return description
	}
	return fmt.Sprintf(r.resolve(lang).unknownFailure, description)
}

// FormatAmount renders a rupee amount rounded to whole rupees with
// thousands separators, e.g. "₹150,000".
func FormatAmount(v float64) string {
	if v < 0 {
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', 0, 64)

	var b strings.Builder
	b.WriteString("₹")
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
