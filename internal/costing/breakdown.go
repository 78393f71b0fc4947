package costing

// Line is one category/amount row of a rendered or exported breakdown.
type Line struct {
	Category string
	Amount   float64
}

// Breakdown itemizes the estimate by cost category. Total is the exact sum
// of the seven cost categories; ProfitLoss and ProfitLossPercent are
// informational and never feed back into Total.
type Breakdown struct {
	DirectMaterial   float64 `json:"direct_material"`
	IndirectMaterial float64 `json:"indirect_material"`
	Labour           float64 `json:"labour"`
	Energy           float64 `json:"energy"`
	Tooling          float64 `json:"tooling"`
	PostCasting      float64 `json:"post_casting"`
	Overheads        float64 `json:"overheads"`
	Total            float64 `json:"total"`

	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
}

// Lines returns the breakdown rows in display order, Total last. The
// profit/loss figures are derived, not cost categories, and are excluded.
func (b Breakdown) Lines() []Line {
	return []Line{
		{"Direct Material", b.DirectMaterial},
		{"Indirect Material", b.IndirectMaterial},
		{"Labour", b.Labour},
		{"Energy", b.Energy},
		{"Tooling", b.Tooling},
		{"Post Casting", b.PostCasting},
		{"Overheads", b.Overheads},
		{"Total", b.Total},
	}
}

// PostCasting itemizes the seven post-casting operations. Their sum is the
// Post Casting category of the parent breakdown.
type PostCasting struct {
	Fettling        float64 `json:"fettling"`
	HeatTreatment   float64 `json:"heat_treatment"`
	NDT             float64 `json:"ndt"`
	PressureTesting float64 `json:"pressure_testing"`
	FinalInspection float64 `json:"final_inspection"`
	Radiography     float64 `json:"radiography"`
	Plating         float64 `json:"plating"`
}

// Total sums the seven operation costs.
func (pc PostCasting) Total() float64 {
	return pc.Fettling + pc.HeatTreatment + pc.NDT + pc.PressureTesting +
		pc.FinalInspection + pc.Radiography + pc.Plating
}

// Lines returns the operation rows in display order.
func (pc PostCasting) Lines() []Line {
	return []Line{
		{"Fettling", pc.Fettling},
		{"Heat Treatment", pc.HeatTreatment},
		{"NDT", pc.NDT},
		{"Pressure Testing", pc.PressureTesting},
		{"Final Inspection", pc.FinalInspection},
		{"Radiography", pc.Radiography},
		{"Plating", pc.Plating},
	}
}
