package explain

// templateSet holds the narrative formats for one language. Formats
// take the scheme name as %[1]s, the benefit phrase as %[2]s and the
// leading failure reason as %[3]s.
type templateSet struct {
	eligible       string
	partial        string
	ineligible     string
	noReason       string // substituted for %[3]s when no failing rule text exists
	unknownFailure string // wraps a failing-rule description caused by missing data
}

// templates carries every supported explanation language. Missing
// languages fall back to English at render time.
var templates = map[string]templateSet{
	"en": {
		eligible:       "You are fully eligible for %[1]s. You could receive up to %[2]s.",
		partial:        "You are partially eligible for %[1]s. Potential benefit: %[2]s. Missing: %[3]s",
		ineligible:     "Currently not eligible for %[1]s. Main reason: %[3]s",
		noReason:       "eligibility conditions are not met",
		unknownFailure: "Information missing: %s",
	},
	"hi": {
		eligible:       "आप %[1]s के लिए पूर्ण रूप से पात्र हैं। आपको %[2]s तक मिल सकते हैं।",
		partial:        "आप %[1]s के लिए आंशिक रूप से पात्र हैं। संभावित लाभ: %[2]s। कमी: %[3]s",
		ineligible:     "आप वर्तमान में %[1]s के लिए पात्र नहीं हैं। मुख्य कारण: %[3]s",
		noReason:       "पात्रता की शर्तें पूरी नहीं होतीं",
		unknownFailure: "जानकारी उपलब्ध नहीं: %s",
	},
	"mr": {
		eligible:       "तुम्ही %[1]s साठी पूर्णपणे पात्र आहात। तुम्हाला %[2]s पर्यंत मिळू शकतात।",
		partial:        "तुम्ही %[1]s साठी अंशतः पात्र आहात। संभाव्य लाभ: %[2]s। कमतरता: %[3]s",
		ineligible:     "तुम्ही सध्या %[1]s साठी पात्र नाहीत। मुख्य कारण: %[3]s",
		noReason:       "पात्रतेच्या अटी पूर्ण होत नाहीत",
		unknownFailure: "माहिती उपलब्ध नाही: %s",
	},
}
