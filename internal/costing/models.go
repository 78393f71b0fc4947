package costing

import "math"

// The published costing model exists in two documented forms for several
// categories. Each category is a strategy picked once per run through
// ModelConfig; variants are never mixed implicitly mid-calculation.

// MaterialModel computes the direct and indirect material costs.
type MaterialModel interface {
	Direct(p Params) float64
	Indirect(p Params) float64
}

// LabourModel computes the labour cost per cast part.
type LabourModel interface {
	Cost(p Params) (float64, error)
}

// EnergyModel computes the melting/holding/auxiliary energy cost.
type EnergyModel interface {
	Cost(p Params) float64
}

// ToolingModel computes the per-part tooling cost.
type ToolingModel interface {
	Cost(p Params) (float64, error)
}

// OverheadModel computes admin and depreciation overheads. The percentage
// form needs the manufacturing cost computed before overheads; the per-kg
// form ignores it.
type OverheadModel interface {
	Cost(p Params, manufacturingCost float64) float64
}

// ModelConfig selects one variant per cost category for a whole run.
type ModelConfig struct {
	Material MaterialModel
	Labour   LabourModel
	Energy   EnergyModel
	Tooling  ToolingModel
	Overhead OverheadModel
}

// DefaultModels is the coherent detailed set: detailed material and labour,
// tariff energy, component tooling and percentage overheads.
func DefaultModels() ModelConfig {
	return ModelConfig{
		Material: DetailedMaterial{},
		Labour:   AmortizedLabour{},
		Energy:   TariffEnergy{},
		Tooling:  ComponentTooling{},
		Overhead: PercentageOverhead{},
	}
}

func (c ModelConfig) withDefaults() ModelConfig {
	defaults := DefaultModels()
	if c.Material == nil {
		c.Material = defaults.Material
	}
	if c.Labour == nil {
		c.Labour = defaults.Labour
	}
	if c.Energy == nil {
		c.Energy = defaults.Energy
	}
	if c.Tooling == nil {
		c.Tooling = defaults.Tooling
	}
	if c.Overhead == nil {
		c.Overhead = defaults.Overhead
	}
	return c
}

// directMaterial is the canonical direct material cost: part mass times
// unit metal cost, inflated by melting and pouring losses. Fettling is
// charged once, as its post-casting line item, never here.
func directMaterial(p Params) float64 {
	return p.MassKg() * p.UnitMetalCost * p.MeltingLoss * p.PouringLoss
}

// DetailedMaterial applies the sand recycle factor and the rejection
// multipliers to the mould and core sand terms.
type DetailedMaterial struct{}

func (DetailedMaterial) Direct(p Params) float64 {
	return directMaterial(p)
}

func (DetailedMaterial) Indirect(p Params) float64 {
	mouldSand := p.MouldSandWeight * p.MouldSandCost * p.SandRecycleFactor * p.RejectionFactor * p.MouldRejection
	coreSand := p.CoreSandWeight * p.CoreSandCost * p.SandRecycleFactor * p.RejectionFactor * p.CoreRejection
	return mouldSand + coreSand + p.MiscMaterialCost
}

// SimplifiedMaterial charges sand at plain weight times cost with no
// recycle or rejection multipliers. Not a lower-precision DetailedMaterial;
// it is a different cost model.
type SimplifiedMaterial struct{}

func (SimplifiedMaterial) Direct(p Params) float64 {
	return directMaterial(p)
}

func (SimplifiedMaterial) Indirect(p Params) float64 {
	return p.MouldSandWeight*p.MouldSandCost + p.CoreSandWeight*p.CoreSandCost + p.MiscMaterialCost
}

// AmortizedLabour spreads fixed design/engineering effort across the order
// quantity: a highly-qualified design term plus a technical term, each
// divided by quantity. Quantity must be positive.
type AmortizedLabour struct{}

func (AmortizedLabour) Cost(p Params) (float64, error) {
	if err := requirePositive("quantity", p.Quantity); err != nil {
		return 0, err
	}
	highlyQualified := p.DesignRejection * p.HighQualSalary * p.DesignersCount * p.DesignHours / p.Quantity
	technical := p.RejectionFactor * p.ActivityRejection * p.TechnicalSalary * p.TechniciansCount * p.LabourHours / p.Quantity
	return highlyQualified + technical, nil
}

// HourlyLabour is the per-unit form: hours times rate, inflated by the
// rejection factor. No amortization.
type HourlyLabour struct{}

func (HourlyLabour) Cost(p Params) (float64, error) {
	return p.LabourHours * p.LabourRate * p.RejectionFactor, nil
}

// feederAllowance models the extra metal melted for feeders and gating
// systems: 30% on top of the part mass. It applies to the melting and
// holding terms only.
const feederAllowance = 1.3

// TariffEnergy prices melting and holding energy from tariff intensities
// expressed per tonne, plus a per-kg rate for everything else.
type TariffEnergy struct{}

func (TariffEnergy) Cost(p Params) float64 {
	mass := p.MassKg()
	melting := p.EnergyUnitCost * p.MeltingEnergy * (mass * feederAllowance) / 1000
	holding := p.EnergyUnitCost * p.HoldingEnergy * p.HoldingTime * (mass * feederAllowance) / 1000
	return melting + holding + mass*p.OtherEnergyRate
}

// YieldEnergy is the simplified form: furnace efficiency and yield factor
// multiply the energy unit cost directly, with no feeder allowance.
type YieldEnergy struct{}

func (YieldEnergy) Cost(p Params) float64 {
	mass := p.MassKg()
	return mass*p.EnergyUnitCost*p.FurnaceEfficiency*p.YieldFactor + mass*p.OtherEnergyRate
}

// ComponentTooling sums amortized software, consumable and maintenance
// shares with the machining charge. Both divisors must be positive.
type ComponentTooling struct{}

func (ComponentTooling) Cost(p Params) (float64, error) {
	if err := requirePositive("design_units_produced", p.DesignUnitsProduced); err != nil {
		return 0, err
	}
	if err := requirePositive("quantity", p.Quantity); err != nil {
		return 0, err
	}
	software := p.SoftwareUpdatesCost / p.DesignUnitsProduced
	consumables := p.ToolingConsumablesCost / p.Quantity
	maintenance := p.EquipmentMaintenanceCost / p.Quantity
	machining := p.MachiningCostPerHour * p.MachiningTime
	return software + consumables + maintenance + machining, nil
}

// Empirical tooling regression coefficients. These are fitted constants of
// the published model, not physical quantities.
const (
	toolingVolumeCoeff   = 0.629
	toolingAccuracyCoeff = 0.048
	toolingShapeCoeff    = 0.023
	toolingIntercept     = 0.739
)

// EmpiricalTooling models relative tooling cost as exponential in part
// volume, accuracy and shape complexity, scaled by a monetary tooling index
// and amortized over the order quantity.
type EmpiricalTooling struct{}

func (EmpiricalTooling) Cost(p Params) (float64, error) {
	if err := requirePositive("quantity", p.Quantity); err != nil {
		return 0, err
	}
	volumeM3 := p.VolumeCm3 / 1e6
	relative := math.Exp(toolingVolumeCoeff*volumeM3 + toolingAccuracyCoeff*p.Accuracy + toolingShapeCoeff*p.Shape + toolingIntercept)
	return relative * p.ToolingIndex / p.Quantity, nil
}

// PercentageOverhead charges admin and depreciation as percentages of the
// manufacturing cost (which never includes overheads itself).
type PercentageOverhead struct{}

func (PercentageOverhead) Cost(p Params, manufacturingCost float64) float64 {
	admin := manufacturingCost * p.AdminPercent / 100
	depreciation := manufacturingCost * p.DeprPercent / 100
	return admin + depreciation
}

// PerKgOverhead charges admin and depreciation at flat per-kg rates,
// independent of the manufacturing cost.
type PerKgOverhead struct{}

func (PerKgOverhead) Cost(p Params, _ float64) float64 {
	return p.MassKg() * (p.AdminRatePerKg + p.DeprRatePerKg)
}
