package costing

// Furnace describes the working ranges of one furnace type: melting-loss
// factor bounds and specific energy efficiency bounds. The UI seeds its
// sliders from these and the midpoints serve as defaults.
type Furnace struct {
	MeltLossLow    float64
	MeltLossHigh   float64
	EfficiencyLow  float64
	EfficiencyHigh float64
}

// DefaultMeltingLoss returns the midpoint of the melting-loss range.
func (f Furnace) DefaultMeltingLoss() float64 {
	return (f.MeltLossLow + f.MeltLossHigh) / 2
}

// DefaultEfficiency returns the midpoint of the efficiency range.
func (f Furnace) DefaultEfficiency() float64 {
	return (f.EfficiencyLow + f.EfficiencyHigh) / 2
}

// MetalDensities maps metal type to density in kg/m3.
var MetalDensities = map[string]float64{
	"Grey Iron": 7100.0,
	"Steel":     7800.0,
	"Aluminum":  2700.0,
	"Copper":    8960.0,
	"Zinc":      7140.0,
}

// FurnaceProfiles maps furnace type to its working ranges.
var FurnaceProfiles = map[string]Furnace{
	"Cupola":       {MeltLossLow: 1.05, MeltLossHigh: 1.12, EfficiencyLow: 3.0, EfficiencyHigh: 3.5},
	"Induction":    {MeltLossLow: 1.01, MeltLossHigh: 1.04, EfficiencyLow: 1.4, EfficiencyHigh: 2.0},
	"Electric Arc": {MeltLossLow: 1.02, MeltLossHigh: 1.07, EfficiencyLow: 2.0, EfficiencyHigh: 2.5},
	"Oil/Gas":      {MeltLossLow: 1.05, MeltLossHigh: 1.10, EfficiencyLow: 3.25, EfficiencyHigh: 3.5},
}

// rejectionFactors maps metal -> quality level -> rejection factor. Metals
// without tabulated data fall back to a neutral 1.0.
var rejectionFactors = map[string]map[string]float64{
	"Grey Iron": {"High": 1.08, "Medium": 1.035, "Low": 1.01},
	"Steel":     {"High": 1.095, "Medium": 1.075, "Low": 1.025},
}

// QualityLevels lists the accepted quality level keys, highest first.
var QualityLevels = []string{"High", "Medium", "Low"}

// DefaultDensity resolves the catalogue density for a metal. Callers invoke
// it whenever the metal selection changes and store the result in Params
// like any other input.
func DefaultDensity(metal string) (float64, error) {
	density, ok := MetalDensities[metal]
	if !ok {
		return 0, &UnknownKeyError{Kind: "metal", Key: metal}
	}
	return density, nil
}

// FurnaceProfile resolves the working ranges for a furnace type.
func FurnaceProfile(furnace string) (Furnace, error) {
	profile, ok := FurnaceProfiles[furnace]
	if !ok {
		return Furnace{}, &UnknownKeyError{Kind: "furnace", Key: furnace}
	}
	return profile, nil
}

// RejectionFactor resolves the rejection factor for a metal and quality
// level. Unknown pairs yield the neutral factor 1.0; this is a documented
// default, not an error.
func RejectionFactor(metal, quality string) float64 {
	byQuality, ok := rejectionFactors[metal]
	if !ok {
		return 1.0
	}
	factor, ok := byQuality[quality]
	if !ok {
		return 1.0
	}
	return factor
}

// RejectionEntry is one row of the tabulated rejection factors.
type RejectionEntry struct {
	Metal   string
	Quality string
	Factor  float64
}

// RejectionEntries returns the tabulated rejection factors in a stable
// order, for callers that mirror the table into their own storage.
func RejectionEntries() []RejectionEntry {
	var entries []RejectionEntry
	for _, metal := range []string{"Grey Iron", "Steel"} {
		for _, quality := range QualityLevels {
			entries = append(entries, RejectionEntry{
				Metal:   metal,
				Quality: quality,
				Factor:  rejectionFactors[metal][quality],
			})
		}
	}
	return entries
}

// Metals returns the catalogue metal names in a stable order.
func Metals() []string {
	return []string{"Grey Iron", "Steel", "Aluminum", "Copper", "Zinc"}
}

// Furnaces returns the furnace type names in a stable order.
func Furnaces() []string {
	return []string{"Cupola", "Induction", "Electric Arc", "Oil/Gas"}
}
