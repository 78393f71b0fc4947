package costing

// Variant names accepted by ModelsFromNames. Callers that keep the model
// selection in configuration store these strings.
const (
	MaterialDetailed   = "detailed"
	MaterialSimplified = "simplified"

	LabourAmortized = "amortized"
	LabourHourly    = "hourly"

	EnergyTariff = "tariff"
	EnergyYield  = "yield"

	ToolingComponent = "component"
	ToolingEmpirical = "empirical"

	OverheadPercentage = "percentage"
	OverheadPerKg      = "per_kg"
)

// ModelsFromNames builds a ModelConfig from stored variant names. An
// unrecognized name yields an *UnknownKeyError naming the category.
func ModelsFromNames(material, labour, energy, tooling, overhead string) (ModelConfig, error) {
	var cfg ModelConfig

	switch material {
	case MaterialDetailed:
		cfg.Material = DetailedMaterial{}
	case MaterialSimplified:
		cfg.Material = SimplifiedMaterial{}
	default:
		return ModelConfig{}, &UnknownKeyError{Kind: "material model", Key: material}
	}

	switch labour {
	case LabourAmortized:
		cfg.Labour = AmortizedLabour{}
	case LabourHourly:
		cfg.Labour = HourlyLabour{}
	default:
		return ModelConfig{}, &UnknownKeyError{Kind: "labour model", Key: labour}
	}

	switch energy {
	case EnergyTariff:
		cfg.Energy = TariffEnergy{}
	case EnergyYield:
		cfg.Energy = YieldEnergy{}
	default:
		return ModelConfig{}, &UnknownKeyError{Kind: "energy model", Key: energy}
	}

	switch tooling {
	case ToolingComponent:
		cfg.Tooling = ComponentTooling{}
	case ToolingEmpirical:
		cfg.Tooling = EmpiricalTooling{}
	default:
		return ModelConfig{}, &UnknownKeyError{Kind: "tooling model", Key: tooling}
	}

	switch overhead {
	case OverheadPercentage:
		cfg.Overhead = PercentageOverhead{}
	case OverheadPerKg:
		cfg.Overhead = PerKgOverhead{}
	default:
		return ModelConfig{}, &UnknownKeyError{Kind: "overhead model", Key: overhead}
	}

	return cfg, nil
}
