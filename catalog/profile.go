package catalog

// FieldKind is the value type of a profile attribute.
type FieldKind int

const (
	KindNumber FieldKind = iota
	KindString
	KindBool
	KindSet
)

// FieldValue is a resolved profile attribute. Kind selects which of the
// payload fields is meaningful.
type FieldValue struct {
	Kind FieldKind
	Num  float64
	Str  string
	Bool bool
	Set  []string
}

// FarmerProfile is the read-only attribute bag one match request is
// evaluated against. Scalar fields are pointers so that an absent value
// is distinguishable from a zero value: the evaluator must be able to
// tell "false" apart from "unknown".
type FarmerProfile struct {
	State               *string  `json:"state,omitempty"`
	District            *string  `json:"district,omitempty"`
	LandType            *string  `json:"land_type,omitempty"`
	Acreage             *float64 `json:"acreage,omitempty"`
	FamilyCount         *int     `json:"family_count,omitempty"`
	AnnualIncome        *float64 `json:"annual_income,omitempty"`
	FarmerType          *string  `json:"farmer_type,omitempty"`
	EducationLevel      *string  `json:"education_level,omitempty"`
	CasteCategory       *string  `json:"caste_category,omitempty"`
	LoanStatus          *string  `json:"loan_status,omitempty"`
	IrrigationAvailable *bool    `json:"irrigation_available,omitempty"`
	BankAccountLinked   *bool    `json:"bank_account_linked,omitempty"`
	AadhaarLinked       *bool    `json:"aadhaar_linked,omitempty"`
	SoilType            *string  `json:"soil_type,omitempty"`
	WaterSource         *string  `json:"water_source,omitempty"`

	MainCrops      []string `json:"main_crops,omitempty"`
	Livestock      []string `json:"livestock,omitempty"`
	MachineryOwned []string `json:"machinery_owned,omitempty"`
}

// fieldKinds is the registry of recognized profile field paths. The
// loader validates every condition leaf against it so that a typo in a
// scheme definition is caught at load time, not at request time.
var fieldKinds = map[string]FieldKind{
	"state":                KindString,
	"district":             KindString,
	"land_type":            KindString,
	"acreage":              KindNumber,
	"family_count":         KindNumber,
	"annual_income":        KindNumber,
	"farmer_type":          KindString,
	"education_level":      KindString,
	"caste_category":       KindString,
	"loan_status":          KindString,
	"irrigation_available": KindBool,
	"bank_account_linked":  KindBool,
	"aadhaar_linked":       KindBool,
	"soil_type":            KindString,
	"water_source":         KindString,
	"main_crops":           KindSet,
	"livestock":            KindSet,
	"machinery_owned":      KindSet,
}

// fieldAliases maps legacy field spellings used by older scheme
// documents onto canonical field names.
var fieldAliases = map[string]string{
	"land_area":   "acreage",
	"income":      "annual_income",
	"family_size": "family_count",
	"crops":       "main_crops",
}

// CanonicalField resolves aliases and reports whether the name is a
// recognized profile field, together with its kind.
func CanonicalField(name string) (string, FieldKind, bool) {
	if alias, ok := fieldAliases[name]; ok {
		name = alias
	}
	kind, ok := fieldKinds[name]
	return name, kind, ok
}

// Field returns the value of the named attribute. The second return is
// false when the field is unrecognized or has no value in this profile.
func (p *FarmerProfile) Field(name string) (FieldValue, bool) {
	name, _, ok := CanonicalField(name)
	if !ok {
		return FieldValue{}, false
	}

	num := func(v *float64) (FieldValue, bool) {
		if v == nil {
			return FieldValue{}, false
		}
		return FieldValue{Kind: KindNumber, Num: *v}, true
	}
	str := func(v *string) (FieldValue, bool) {
		if v == nil {
			return FieldValue{}, false
		}
		return FieldValue{Kind: KindString, Str: *v}, true
	}
	boolean := func(v *bool) (FieldValue, bool) {
		if v == nil {
			return FieldValue{}, false
		}
		return FieldValue{Kind: KindBool, Bool: *v}, true
	}
	set := func(v []string) (FieldValue, bool) {
		if v == nil {
			return FieldValue{}, false
		}
		return FieldValue{Kind: KindSet, Set: v}, true
	}

	switch name {
	case "state":
		return str(p.State)
	case "district":
		return str(p.District)
	case "land_type":
		return str(p.LandType)
	case "acreage":
		return num(p.Acreage)
	case "family_count":
		if p.FamilyCount == nil {
			return FieldValue{}, false
		}
		return FieldValue{Kind: KindNumber, Num: float64(*p.FamilyCount)}, true
	case "annual_income":
		return num(p.AnnualIncome)
	case "farmer_type":
		return str(p.FarmerType)
	case "education_level":
		return str(p.EducationLevel)
	case "caste_category":
		return str(p.CasteCategory)
	case "loan_status":
		return str(p.LoanStatus)
	case "irrigation_available":
		return boolean(p.IrrigationAvailable)
	case "bank_account_linked":
		return boolean(p.BankAccountLinked)
	case "aadhaar_linked":
		return boolean(p.AadhaarLinked)
	case "soil_type":
		return str(p.SoilType)
	case "water_source":
		return str(p.WaterSource)
	case "main_crops":
		return set(p.MainCrops)
	case "livestock":
		return set(p.Livestock)
	case "machinery_owned":
		return set(p.MachineryOwned)
	}
	return FieldValue{}, false
}
