package costing

// Params is the flat parameter record for a single estimate. The caller
// fills it once (resolving metal/furnace lookups first) and the engine never
// mutates it, so a Params value can be shared freely.
type Params struct {
	// Part and quote.
	QuotedPrice   float64
	Metal         string
	VolumeCm3     float64
	Density       float64 // kg/m3
	UnitMetalCost float64 // per kg
	Quantity      float64
	Shape         float64 // shape complexity index, 0-100
	Accuracy      float64 // accuracy index, 1-100

	// Process factors.
	MeltingLoss       float64 // f_m
	PouringLoss       float64 // f_p
	YieldFactor       float64 // f_y
	FurnaceEfficiency float64 // eta
	RejectionFactor   float64 // f_r, from RejectionFactor(metal, quality)

	// Labour, amortized model.
	DesignersCount    float64
	DesignHours       float64
	HighQualSalary    float64 // per hour
	DesignRejection   float64
	TechniciansCount  float64
	LabourHours       float64
	TechnicalSalary   float64 // per hour
	ActivityRejection float64

	// Labour, hourly model.
	LabourRate float64 // per hour

	// Mould and core materials.
	MouldSandWeight   float64 // kg
	MouldSandCost     float64 // per kg
	CoreSandWeight    float64 // kg
	CoreSandCost      float64 // per kg
	SandRecycleFactor float64
	MouldRejection    float64
	CoreRejection     float64
	MiscMaterialCost  float64

	// Energy.
	EnergyUnitCost  float64 // per kWh
	MeltingEnergy   float64 // kWh/t
	HoldingEnergy   float64 // kWh/t/min
	HoldingTime     float64 // min
	OtherEnergyRate float64 // per kg

	// Tooling, component model.
	SoftwareUpdatesCost      float64
	DesignUnitsProduced      float64
	ToolingConsumablesCost   float64
	EquipmentMaintenanceCost float64
	MachiningCostPerHour     float64
	MachiningTime            float64 // hours

	// Tooling, empirical model.
	ToolingIndex float64

	// Overheads, percentage model.
	AdminPercent float64
	DeprPercent  float64

	// Overheads, per-kg model.
	AdminRatePerKg float64
	DeprRatePerKg  float64

	// Post-casting operations.
	FettlingLabourHours       float64
	FettlingLabourRate        float64
	FettlingEquipmentCost     float64
	HeatTreatmentEnergy       float64 // kWh
	HeatTreatmentLabourHours  float64
	HeatTreatmentLabourRate   float64
	NDTCostPerPart            float64
	PressureTestLabourHours   float64
	PressureTestLabourRate    float64
	PressureTestEquipmentCost float64
	InspectionLabourHours     float64
	InspectionLabourRate      float64
	RadiographyCostPerPart    float64
	PlatingMaterialCost       float64
	PlatingLabourHours        float64
	PlatingLabourRate         float64
}

// MassKg is the cast part mass. Every calculator that needs the part mass
// goes through this so material, energy and overhead figures never drift.
func (p Params) MassKg() float64 {
	return p.Density * (p.VolumeCm3 / 1e6)
}
