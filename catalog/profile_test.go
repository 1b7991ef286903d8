package catalog

import "testing"

func TestProfileFieldLookup(t *testing.T) {
	acreage := 1.5
	state := "Maharashtra"
	family := 4
	irrigated := true
	p := &FarmerProfile{
		State:               &state,
		Acreage:             &acreage,
		FamilyCount:         &family,
		IrrigationAvailable: &irrigated,
		MainCrops:           []string{"rice", "wheat"},
	}

	t.Run("number field", func(t *testing.T) {
		fv, ok := p.Field("acreage")
		if !ok || fv.Kind != KindNumber || fv.Num != 1.5 {
			t.Errorf("Field(acreage) = %+v, %v", fv, ok)
		}
	})

	t.Run("int field surfaces as number", func(t *testing.T) {
		fv, ok := p.Field("family_count")
		if !ok || fv.Kind != KindNumber || fv.Num != 4 {
			t.Errorf("Field(family_count) = %+v, %v", fv, ok)
		}
	})

	t.Run("string field", func(t *testing.T) {
		fv, ok := p.Field("state")
		if !ok || fv.Kind != KindString || fv.Str != "Maharashtra" {
			t.Errorf("Field(state) = %+v, %v", fv, ok)
		}
	})

	t.Run("bool field", func(t *testing.T) {
		fv, ok := p.Field("irrigation_available")
		if !ok || fv.Kind != KindBool || !fv.Bool {
			t.Errorf("Field(irrigation_available) = %+v, %v", fv, ok)
		}
	})

	t.Run("set field", func(t *testing.T) {
		fv, ok := p.Field("main_crops")
		if !ok || fv.Kind != KindSet || len(fv.Set) != 2 {
			t.Errorf("Field(main_crops) = %+v, %v", fv, ok)
		}
	})

	t.Run("absent field is not defaulted", func(t *testing.T) {
		if _, ok := p.Field("annual_income"); ok {
			t.Error("Field(annual_income) reported a value for an absent field")
		}
	})

	t.Run("unrecognized field", func(t *testing.T) {
		if _, ok := p.Field("shoe_size"); ok {
			t.Error("Field(shoe_size) reported a value for an unknown field")
		}
	})
}

func TestProfileFieldAliases(t *testing.T) {
	income := 150000.0
	p := &FarmerProfile{
		AnnualIncome: &income,
		MainCrops:    []string{"cotton"},
	}

	testCases := []struct {
		alias     string
		canonical string
	}{
		{"income", "annual_income"},
		{"land_area", "acreage"},
		{"family_size", "family_count"},
		{"crops", "main_crops"},
	}

	for _, tc := range testCases {
		t.Run(tc.alias, func(t *testing.T) {
			name, _, ok := CanonicalField(tc.alias)
			if !ok {
				t.Fatalf("CanonicalField(%q) not recognized", tc.alias)
			}
			if name != tc.canonical {
				t.Errorf("CanonicalField(%q) = %q, want %q", tc.alias, name, tc.canonical)
			}
		})
	}

	if fv, ok := p.Field("income"); !ok || fv.Num != 150000 {
		t.Errorf("Field(income) via alias = %+v, %v", fv, ok)
	}
}
