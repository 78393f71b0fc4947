package costing

import (
	"errors"
	"testing"
)

func TestDefaultDensity(t *testing.T) {
	density, err := DefaultDensity("Grey Iron")
	if err != nil {
		t.Fatalf("DefaultDensity returned error: %v", err)
	}
	nearlyEqual(t, "grey iron density", density, 7100)
}

func TestDefaultDensity_UnknownMetal(t *testing.T) {
	_, err := DefaultDensity("Unobtainium")
	var unknown *UnknownKeyError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownKeyError, got %v", err)
	}
	if unknown.Kind != "metal" || unknown.Key != "Unobtainium" {
		t.Fatalf("unexpected error detail: %+v", unknown)
	}
}

func TestFurnaceProfile_MidpointDefaults(t *testing.T) {
	profile, err := FurnaceProfile("Cupola")
	if err != nil {
		t.Fatalf("FurnaceProfile returned error: %v", err)
	}
	nearlyEqual(t, "cupola melting loss default", profile.DefaultMeltingLoss(), 1.085)
	nearlyEqual(t, "cupola efficiency default", profile.DefaultEfficiency(), 3.25)
}

func TestFurnaceProfile_UnknownFurnace(t *testing.T) {
	_, err := FurnaceProfile("Solar")
	var unknown *UnknownKeyError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownKeyError, got %v", err)
	}
}

func TestRejectionFactor(t *testing.T) {
	nearlyEqual(t, "grey iron medium", RejectionFactor("Grey Iron", "Medium"), 1.035)
	nearlyEqual(t, "steel high", RejectionFactor("Steel", "High"), 1.095)
}

func TestRejectionFactor_UnknownPairFallsBackToNeutral(t *testing.T) {
	// Aluminum has no tabulated rejection data at all.
	nearlyEqual(t, "aluminum high", RejectionFactor("Aluminum", "High"), 1.0)
	// Known metal, unknown quality level.
	nearlyEqual(t, "grey iron bogus quality", RejectionFactor("Grey Iron", "Ultra"), 1.0)
}

func TestCataloguesCoverLookupTables(t *testing.T) {
	for _, metal := range Metals() {
		if _, ok := MetalDensities[metal]; !ok {
			t.Fatalf("metal %q missing from density table", metal)
		}
	}
	for _, furnace := range Furnaces() {
		if _, ok := FurnaceProfiles[furnace]; !ok {
			t.Fatalf("furnace %q missing from profile table", furnace)
		}
	}
}
