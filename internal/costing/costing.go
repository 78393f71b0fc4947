// Package costing estimates the manufacturing cost of a sand-cast metal
// part. It is a pure function pipeline: a flat Params record goes in, a
// categorized Breakdown comes out. It performs no I/O and holds no state,
// so independent estimates are safe to run concurrently.
package costing

// Result groups the full estimate output: the category breakdown and the
// per-operation post-casting detail behind its Post Casting line.
type Result struct {
	Breakdown   Breakdown
	PostCasting PostCasting
}

// Estimate runs every sub-calculator of the selected model set and sums the
// results. Zero-value fields of models fall back to DefaultModels. It fails
// fast with an *InvalidInputError before any amortizing division and
// produces no partial result on error.
func Estimate(p Params, models ModelConfig) (Result, error) {
	models = models.withDefaults()

	labour, err := models.Labour.Cost(p)
	if err != nil {
		return Result{}, err
	}
	tooling, err := models.Tooling.Cost(p)
	if err != nil {
		return Result{}, err
	}

	direct := models.Material.Direct(p)
	indirect := models.Material.Indirect(p)
	energy := models.Energy.Cost(p)
	postCasting := postCastingCosts(p)
	postCastingTotal := postCasting.Total()

	// Manufacturing cost subtotal, before overheads. Overheads are never
	// self-referential.
	manufacturing := direct + indirect + labour + energy + tooling + postCastingTotal
	overheads := models.Overhead.Cost(p, manufacturing)
	total := manufacturing + overheads

	breakdown := Breakdown{
		DirectMaterial:   direct,
		IndirectMaterial: indirect,
		Labour:           labour,
		Energy:           energy,
		Tooling:          tooling,
		PostCasting:      postCastingTotal,
		Overheads:        overheads,
		Total:            total,
		ProfitLoss:       p.QuotedPrice - total,
	}
	if p.QuotedPrice != 0 {
		breakdown.ProfitLossPercent = 100 * breakdown.ProfitLoss / p.QuotedPrice
	}

	return Result{Breakdown: breakdown, PostCasting: postCasting}, nil
}

// postCastingCosts prices the seven post-casting operations. Each line is a
// labour term (hours times rate) and/or a flat equipment, material or
// per-part charge. Plating keeps its material and labour components
// separate; there is no single flat plating charge.
func postCastingCosts(p Params) PostCasting {
	return PostCasting{
		Fettling:        p.FettlingLabourHours*p.FettlingLabourRate + p.FettlingEquipmentCost,
		HeatTreatment:   p.HeatTreatmentEnergy*p.EnergyUnitCost + p.HeatTreatmentLabourHours*p.HeatTreatmentLabourRate,
		NDT:             p.NDTCostPerPart,
		PressureTesting: p.PressureTestLabourHours*p.PressureTestLabourRate + p.PressureTestEquipmentCost,
		FinalInspection: p.InspectionLabourHours * p.InspectionLabourRate,
		Radiography:     p.RadiographyCostPerPart,
		Plating:         p.PlatingMaterialCost + p.PlatingLabourHours*p.PlatingLabourRate,
	}
}
