package costing

// DefaultParams returns the estimator's stock defaults: a 1830 cm3 grey
// iron part, high quality level, melted in a cupola, order quantity 5000.
// Callers seed their editable defaults from this and pre-fill forms with it.
func DefaultParams() Params {
	cupola := FurnaceProfiles["Cupola"]
	return Params{
		QuotedPrice:   1000,
		Metal:         "Grey Iron",
		VolumeCm3:     1830,
		Density:       MetalDensities["Grey Iron"],
		UnitMetalCost: 1.0,
		Quantity:      5000,
		Shape:         30,
		Accuracy:      35,

		MeltingLoss:       cupola.DefaultMeltingLoss(),
		PouringLoss:       1.03,
		YieldFactor:       0.76,
		FurnaceEfficiency: cupola.DefaultEfficiency(),
		RejectionFactor:   RejectionFactor("Grey Iron", "High"),

		DesignersCount:    2,
		DesignHours:       40,
		HighQualSalary:    60,
		DesignRejection:   1.1,
		TechniciansCount:  3,
		LabourHours:       8,
		TechnicalSalary:   25,
		ActivityRejection: 1.05,
		LabourRate:        25,

		MouldSandWeight:   5,
		MouldSandCost:     0.05,
		CoreSandWeight:    1,
		CoreSandCost:      0.10,
		SandRecycleFactor: 0.7,
		MouldRejection:    1.05,
		CoreRejection:     1.05,

		EnergyUnitCost:  0.10,
		MeltingEnergy:   580,
		HoldingEnergy:   0.4,
		HoldingTime:     30,
		OtherEnergyRate: 0.50,

		SoftwareUpdatesCost:      5000,
		DesignUnitsProduced:      50,
		ToolingConsumablesCost:   200,
		EquipmentMaintenanceCost: 1000,
		MachiningCostPerHour:     40,
		MachiningTime:            2,
		ToolingIndex:             1000,

		AdminPercent:   10,
		DeprPercent:    20,
		AdminRatePerKg: 0.8,
		DeprRatePerKg:  1.2,

		FettlingLabourHours:       0.5,
		FettlingLabourRate:        25,
		FettlingEquipmentCost:     5,
		HeatTreatmentEnergy:       50,
		HeatTreatmentLabourHours:  1,
		HeatTreatmentLabourRate:   30,
		NDTCostPerPart:            15,
		PressureTestLabourHours:   0.5,
		PressureTestLabourRate:    35,
		PressureTestEquipmentCost: 20,
		InspectionLabourHours:     0.5,
		InspectionLabourRate:      25,
		RadiographyCostPerPart:    25,
		PlatingMaterialCost:       15,
		PlatingLabourHours:        1,
		PlatingLabourRate:         30,
	}
}
