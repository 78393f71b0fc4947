package main

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/foundryworks/castcost/internal/costing"
)

func validEstimateForm() url.Values {
	form := url.Values{}
	for field, value := range map[string]string{
		"quoted_price":    "1000",
		"metal":           "Grey Iron",
		"quality":         "High",
		"volume_cm3":      "1830",
		"density":         "7100",
		"unit_metal_cost": "1.0",
		"quantity":        "5000",
		"shape":           "30",
		"accuracy":        "35",

		"melting_loss":       "1.085",
		"pouring_loss":       "1.03",
		"yield_factor":       "0.76",
		"furnace_efficiency": "3.25",

		"designers_count":    "2",
		"design_hours":       "40",
		"salary_high_qual":   "60",
		"design_rejection":   "1.1",
		"technicians_count":  "3",
		"labor_hours":        "8",
		"salary_technical":   "25",
		"activity_rejection": "1.05",
		"labor_rate":         "25",

		"mold_sand_weight":      "5",
		"mold_sand_cost":        "0.05",
		"core_sand_weight":      "1",
		"core_sand_cost":        "0.10",
		"sand_recycle_factor":   "0.7",
		"mold_rejection_factor": "1.05",
		"core_rejection_factor": "1.05",
		"misc_material_cost":    "0",

		"energy_cost":       "0.10",
		"melting_energy":    "580",
		"holding_energy":    "0.4",
		"holding_time":      "30",
		"other_energy_rate": "0.5",

		"software_updates_cost":      "5000",
		"design_units_produced":      "50",
		"tooling_consumables_cost":   "200",
		"equipment_maintenance_cost": "1000",
		"machining_cost_per_hour":    "40",
		"machining_time":             "2",
		"tooling_index":              "1000",

		"admin_percentage":  "10",
		"depr_percentage":   "20",
		"admin_rate_per_kg": "0.8",
		"depr_rate_per_kg":  "1.2",

		"fettling_labor_hours":            "0.5",
		"fettling_labor_rate":             "25",
		"fettling_equipment_cost":         "5",
		"heat_treatment_energy":           "50",
		"heat_treatment_labor_hours":      "1",
		"heat_treatment_labor_rate":       "30",
		"ndt_cost_per_part":               "15",
		"pressure_testing_labor_hours":    "0.5",
		"pressure_testing_labor_rate":     "35",
		"pressure_testing_equipment_cost": "20",
		"inspection_labor_hours":          "0.5",
		"inspection_labor_rate":           "25",
		"radiography_cost_per_part":       "25",
		"plating_material_cost":           "15",
		"plating_labor_hours":             "1",
		"plating_labor_rate":              "30",
	} {
		form.Set(field, value)
	}
	return form
}

func TestParseEstimateForm_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/estimate", nil)
	req.Form = validEstimateForm()

	values, err := parseEstimateForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if values.Params.Metal != "Grey Iron" || values.Quality != "High" {
		t.Fatalf("unexpected metal/quality: %+v", values)
	}
	if values.Params.VolumeCm3 != 1830 || values.Params.Density != 7100 {
		t.Fatalf("unexpected geometry: %+v", values.Params)
	}
	if values.Params.Quantity != 5000 {
		t.Fatalf("unexpected quantity: %v", values.Params.Quantity)
	}
	if values.Models.Tooling != costing.ToolingComponent {
		t.Fatalf("expected component tooling default, got %q", values.Models.Tooling)
	}
}

func TestParseEstimateForm_ModelSelection(t *testing.T) {
	form := validEstimateForm()
	form.Set("tooling_model", costing.ToolingEmpirical)
	form.Set("overhead_model", costing.OverheadPerKg)

	req := httptest.NewRequest("POST", "/estimate", nil)
	req.Form = form

	values, err := parseEstimateForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if values.Models.Tooling != costing.ToolingEmpirical {
		t.Fatalf("expected empirical tooling, got %q", values.Models.Tooling)
	}
	if values.Models.Overhead != costing.OverheadPerKg {
		t.Fatalf("expected per-kg overhead, got %q", values.Models.Overhead)
	}
	if values.Models.Material != costing.MaterialDetailed {
		t.Fatalf("expected detailed material default, got %q", values.Models.Material)
	}
}

func TestParseEstimateForm_MissingMetal(t *testing.T) {
	form := validEstimateForm()
	form.Set("metal", "  ")

	req := httptest.NewRequest("POST", "/estimate", nil)
	req.Form = form

	if _, err := parseEstimateForm(req); err == nil {
		t.Fatalf("expected validation error for missing metal")
	}
}

func TestParseEstimateForm_InvalidNumbers(t *testing.T) {
	form := validEstimateForm()
	form.Set("volume_cm3", "abc")

	req := httptest.NewRequest("POST", "/estimate", nil)
	req.Form = form

	if _, err := parseEstimateForm(req); err == nil {
		t.Fatalf("expected numeric validation error")
	}
}

func TestParseEstimateForm_ZeroQuantityRejected(t *testing.T) {
	form := validEstimateForm()
	form.Set("quantity", "0")

	req := httptest.NewRequest("POST", "/estimate", nil)
	req.Form = form

	if _, err := parseEstimateForm(req); err == nil {
		t.Fatalf("expected validation error for zero quantity")
	}
}

func TestExportFilename(t *testing.T) {
	if got := exportFilename("Grey Iron", 5000); got != "casting_cost_Grey_Iron_5000pcs.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
	if got := exportFilename("Oil/Gas", 10); got != "casting_cost_Oil-Gas_10pcs.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
}
