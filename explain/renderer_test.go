package explain

import (
	"strings"
	"testing"
)

func TestNarrativeEnglish(t *testing.T) {
	r := NewRenderer(nil)

	t.Run("eligible", func(t *testing.T) {
		got := r.Narrative("en", StatusEligible, "PM-KISAN Income Support", 6000, "")
		want := "You are fully eligible for PM-KISAN Income Support. You could receive up to ₹6,000."
		if got != want {
			t.Errorf("Narrative() = %q, want %q", got, want)
		}
	})

	t.Run("partial names the first failing rule", func(t *testing.T) {
		got := r.Narrative("en", StatusPartial, "Kisan Credit Card", 50000, "No defaulted agricultural loan")
		if !strings.Contains(got, "partially eligible") {
			t.Errorf("Narrative() = %q, want partial wording", got)
		}
		if !strings.Contains(got, "No defaulted agricultural loan") {
			t.Errorf("Narrative() = %q, does not carry the failing rule", got)
		}
	})

	t.Run("ineligible without failure text uses generic reason", func(t *testing.T) {
		got := r.Narrative("en", StatusIneligible, "Dairy Entrepreneurship Development", 0, "")
		if !strings.Contains(got, "eligibility conditions are not met") {
			t.Errorf("Narrative() = %q, want the generic reason", got)
		}
	})
}

func TestNarrativeTranslations(t *testing.T) {
	r := NewRenderer(nil)

	hi := r.Narrative("hi", StatusEligible, "पीएम-किसान सम्मान निधि", 6000, "")
	if !strings.Contains(hi, "पूर्ण रूप से पात्र") || !strings.Contains(hi, "₹6,000") {
		t.Errorf("Hindi narrative = %q", hi)
	}

	mr := r.Narrative("mr", StatusPartial, "पीएम-किसान सन्मान निधी", 6000, "कारण")
	if !strings.Contains(mr, "अंशतः पात्र") {
		t.Errorf("Marathi narrative = %q", mr)
	}
}

func TestNarrativeFallback(t *testing.T) {
	var recorded []string
	r := NewRenderer(func(language string) {
		recorded = append(recorded, language)
	})

	got := r.Narrative("ta", StatusEligible, "Scheme", 100, "")
	if !strings.Contains(got, "fully eligible") {
		t.Errorf("fallback narrative = %q, want English text", got)
	}
	if len(recorded) != 1 || recorded[0] != "ta" {
		t.Errorf("fallback hook recorded %v, want [ta]", recorded)
	}

	// Supported languages never fire the hook.
	r.Narrative("hi", StatusEligible, "Scheme", 100, "")
	if len(recorded) != 1 {
		t.Errorf("fallback hook fired for a supported language: %v", recorded)
	}
}

func TestFailureText(t *testing.T) {
	r := NewRenderer(nil)

	t.Run("mismatch is the plain description", func(t *testing.T) {
		got := r.FailureText("en", "Must own cultivable land", false)
		if got != "Must own cultivable land" {
			t.Errorf("FailureText() = %q", got)
		}
	})

	t.Run("unknown is wrapped", func(t *testing.T) {
		got := r.FailureText("en", "Annual income within priority lending band", true)
		want := "Information missing: Annual income within priority lending band"
		if got != want {
			t.Errorf("FailureText() = %q, want %q", got, want)
		}
	})

	t.Run("unknown wrapped in hindi", func(t *testing.T) {
		got := r.FailureText("hi", "वार्षिक आय", true)
		if !strings.HasPrefix(got, "जानकारी उपलब्ध नहीं") {
			t.Errorf("FailureText() = %q", got)
		}
	})
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{950, "₹950"},
		{6000, "₹6,000"},
		{50000, "₹50,000"},
		{150000, "₹150,000"},
		{1234567, "₹1,234,567"},
		{45000.49, "₹45,000"},
		{-500, "₹0"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatAmount(tc.in); got != tc.want {
				t.Errorf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != 3 {
		t.Fatalf("Languages() = %v, want three entries", langs)
	}
	for _, l := range langs {
		if _, ok := templates[l]; !ok {
			t.Errorf("Languages() lists %q with no template", l)
		}
	}
}
