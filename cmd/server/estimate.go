package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foundryworks/castcost/internal/costing"
)

// modelSelection holds the variant name chosen for each cost category.
type modelSelection struct {
	Material string
	Labour   string
	Energy   string
	Tooling  string
	Overhead string
}

func defaultModelSelection() modelSelection {
	return modelSelection{
		Material: costing.MaterialDetailed,
		Labour:   costing.LabourAmortized,
		Energy:   costing.EnergyTariff,
		Tooling:  costing.ToolingComponent,
		Overhead: costing.OverheadPercentage,
	}
}

// estimateFormValues is everything the estimate form submits: the flat
// parameter record, the quality level used to resolve the rejection factor,
// the model variant selection, and the optional save metadata.
type estimateFormValues struct {
	Params  costing.Params
	Quality string
	Models  modelSelection
	Title   string
	Notes   string
}

type metalOption struct {
	Name     string
	Density  float64
	UnitCost float64
}

type furnaceOption struct {
	Name        string
	MeltingLoss float64
	Efficiency  float64
}

func furnaceOptions() []furnaceOption {
	names := costing.Furnaces()
	options := make([]furnaceOption, 0, len(names))
	for _, name := range names {
		profile, err := costing.FurnaceProfile(name)
		if err != nil {
			continue
		}
		options = append(options, furnaceOption{
			Name:        name,
			MeltingLoss: profile.DefaultMeltingLoss(),
			Efficiency:  profile.DefaultEfficiency(),
		})
	}
	return options
}

type estimateFormViewData struct {
	baseViewData
	Params    costing.Params
	Quality   string
	Models    modelSelection
	Metals    []metalOption
	Furnaces  []furnaceOption
	Qualities []string
}

type estimateResultViewData struct {
	baseViewData
	Params    costing.Params
	Quality   string
	Models    modelSelection
	Lines     []costing.Line
	PostLines []costing.Line
	Breakdown costing.Breakdown
}

func (s *server) handleEstimateForm(w http.ResponseWriter, r *http.Request) {
	params, models, err := s.loadEstimatorDefaults()
	if err != nil {
		http.Error(w, "failed to load estimator defaults", http.StatusInternalServerError)
		return
	}

	metals, err := s.listMetals()
	if err != nil {
		http.Error(w, "failed to load metals", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "estimate_form.html", estimateFormViewData{
		baseViewData: baseViewData{
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Params:    params,
		Quality:   "High",
		Models:    models,
		Metals:    metals,
		Furnaces:  furnaceOptions(),
		Qualities: costing.QualityLevels,
	})
}

func (s *server) handleEstimateCalc(w http.ResponseWriter, r *http.Request) {
	values, result, err := s.computeEstimate(r)
	if err != nil {
		s.renderEstimateError(w, r, values, err)
		return
	}

	s.renderTemplate(w, "estimate_result.html", estimateResultViewData{
		Params:    values.Params,
		Quality:   values.Quality,
		Models:    values.Models,
		Lines:     result.Breakdown.Lines(),
		PostLines: result.PostCasting.Lines(),
		Breakdown: result.Breakdown,
	})
}

// computeEstimate parses the submitted form, resolves the rejection factor,
// and runs the costing engine.
func (s *server) computeEstimate(r *http.Request) (estimateFormValues, costing.Result, error) {
	if err := r.ParseForm(); err != nil {
		return estimateFormValues{}, costing.Result{}, fmt.Errorf("invalid form")
	}

	values, err := parseEstimateForm(r)
	if err != nil {
		return values, costing.Result{}, err
	}

	factor, err := s.rejectionFactor(values.Params.Metal, values.Quality)
	if err != nil {
		return values, costing.Result{}, err
	}
	values.Params.RejectionFactor = factor

	models, err := costing.ModelsFromNames(
		values.Models.Material,
		values.Models.Labour,
		values.Models.Energy,
		values.Models.Tooling,
		values.Models.Overhead,
	)
	if err != nil {
		return values, costing.Result{}, err
	}

	result, err := costing.Estimate(values.Params, models)
	if err != nil {
		return values, costing.Result{}, err
	}

	return values, result, nil
}

func (s *server) renderEstimateError(w http.ResponseWriter, r *http.Request, values estimateFormValues, cause error) {
	metals, err := s.listMetals()
	if err != nil {
		http.Error(w, "failed to load metals", http.StatusInternalServerError)
		return
	}

	quality := values.Quality
	if quality == "" {
		quality = "High"
	}

	w.WriteHeader(http.StatusBadRequest)
	s.renderTemplate(w, "estimate_form.html", estimateFormViewData{
		baseViewData: baseViewData{ErrorMessage: cause.Error()},
		Params:       values.Params,
		Quality:      quality,
		Models:       values.Models,
		Metals:       metals,
		Furnaces:     furnaceOptions(),
		Qualities:    costing.QualityLevels,
	})
}

func (s *server) handleMetalDensity(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	density, err := s.metalDensity(name)
	if err != nil {
		var unknown *costing.UnknownKeyError
		if errors.As(err, &unknown) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to resolve density", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"metal": name, "density": density})
}

// metalDensity prefers the editable metals table; metals not stored there
// fall back to the built-in catalogue.
func (s *server) metalDensity(name string) (float64, error) {
	var density float64
	err := s.db.QueryRow(`SELECT density FROM metals WHERE name = ? AND active`, name).Scan(&density)
	if err == nil {
		return density, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("query metal density: %w", err)
	}
	return costing.DefaultDensity(name)
}

// rejectionFactor resolves (metal, quality) from the editable table. Pairs
// without a row keep the engine's neutral factor of 1.0.
func (s *server) rejectionFactor(metal, quality string) (float64, error) {
	var factor float64
	err := s.db.QueryRow(`SELECT factor FROM rejection_factors WHERE metal = ? AND quality = ?`, metal, quality).Scan(&factor)
	if errors.Is(err, sql.ErrNoRows) {
		return 1.0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query rejection factor: %w", err)
	}
	return factor, nil
}

func (s *server) loadEstimatorDefaults() (costing.Params, modelSelection, error) {
	var paramsJSON string
	models := modelSelection{}

	err := s.db.QueryRow(`
		SELECT params_json, material_model, labour_model, energy_model, tooling_model, overhead_model
		FROM estimator_defaults
		WHERE id = 1
	`).Scan(&paramsJSON, &models.Material, &models.Labour, &models.Energy, &models.Tooling, &models.Overhead)
	if errors.Is(err, sql.ErrNoRows) {
		return costing.DefaultParams(), defaultModelSelection(), nil
	}
	if err != nil {
		return costing.Params{}, modelSelection{}, fmt.Errorf("query estimator defaults: %w", err)
	}

	var params costing.Params
	if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
		return costing.Params{}, modelSelection{}, fmt.Errorf("unmarshal default params: %w", err)
	}

	return params, models, nil
}

func (s *server) listMetals() ([]metalOption, error) {
	rows, err := s.db.Query(`
		SELECT name, density, unit_cost
		FROM metals
		WHERE active
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query metals: %w", err)
	}
	defer rows.Close()

	metals := make([]metalOption, 0)
	for rows.Next() {
		var m metalOption
		if err := rows.Scan(&m.Name, &m.Density, &m.UnitCost); err != nil {
			return nil, fmt.Errorf("scan metal: %w", err)
		}
		metals = append(metals, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metals: %w", err)
	}

	return metals, nil
}

func parseEstimateForm(r *http.Request) (estimateFormValues, error) {
	values := estimateFormValues{
		Quality: strings.TrimSpace(r.FormValue("quality")),
		Title:   strings.TrimSpace(r.FormValue("title")),
		Notes:   strings.TrimSpace(r.FormValue("notes")),
		Models: modelSelection{
			Material: formValueOr(r, "material_model", costing.MaterialDetailed),
			Labour:   formValueOr(r, "labour_model", costing.LabourAmortized),
			Energy:   formValueOr(r, "energy_model", costing.EnergyTariff),
			Tooling:  formValueOr(r, "tooling_model", costing.ToolingComponent),
			Overhead: formValueOr(r, "overhead_model", costing.OverheadPercentage),
		},
	}

	p := &values.Params
	p.Metal = strings.TrimSpace(r.FormValue("metal"))
	if p.Metal == "" {
		return values, fmt.Errorf("metal is required")
	}

	fields := []struct {
		name  string
		dest  *float64
		parse func(raw, field string) (float64, error)
	}{
		{"quoted_price", &p.QuotedPrice, parseNonNegativeFloat},
		{"volume_cm3", &p.VolumeCm3, parseNonNegativeFloat},
		{"density", &p.Density, parseNonNegativeFloat},
		{"unit_metal_cost", &p.UnitMetalCost, parseNonNegativeFloat},
		{"quantity", &p.Quantity, parsePositiveFloat},
		{"shape", &p.Shape, parseNonNegativeFloat},
		{"accuracy", &p.Accuracy, parseNonNegativeFloat},

		{"melting_loss", &p.MeltingLoss, parseNonNegativeFloat},
		{"pouring_loss", &p.PouringLoss, parseNonNegativeFloat},
		{"yield_factor", &p.YieldFactor, parseNonNegativeFloat},
		{"furnace_efficiency", &p.FurnaceEfficiency, parseNonNegativeFloat},

		{"designers_count", &p.DesignersCount, parseNonNegativeFloat},
		{"design_hours", &p.DesignHours, parseNonNegativeFloat},
		{"salary_high_qual", &p.HighQualSalary, parseNonNegativeFloat},
		{"design_rejection", &p.DesignRejection, parseNonNegativeFloat},
		{"technicians_count", &p.TechniciansCount, parseNonNegativeFloat},
		{"labor_hours", &p.LabourHours, parseNonNegativeFloat},
		{"salary_technical", &p.TechnicalSalary, parseNonNegativeFloat},
		{"activity_rejection", &p.ActivityRejection, parseNonNegativeFloat},
		{"labor_rate", &p.LabourRate, parseNonNegativeFloat},

		{"mold_sand_weight", &p.MouldSandWeight, parseNonNegativeFloat},
		{"mold_sand_cost", &p.MouldSandCost, parseNonNegativeFloat},
		{"core_sand_weight", &p.CoreSandWeight, parseNonNegativeFloat},
		{"core_sand_cost", &p.CoreSandCost, parseNonNegativeFloat},
		{"sand_recycle_factor", &p.SandRecycleFactor, parseNonNegativeFloat},
		{"mold_rejection_factor", &p.MouldRejection, parseNonNegativeFloat},
		{"core_rejection_factor", &p.CoreRejection, parseNonNegativeFloat},
		{"misc_material_cost", &p.MiscMaterialCost, parseNonNegativeFloat},

		{"energy_cost", &p.EnergyUnitCost, parseNonNegativeFloat},
		{"melting_energy", &p.MeltingEnergy, parseNonNegativeFloat},
		{"holding_energy", &p.HoldingEnergy, parseNonNegativeFloat},
		{"holding_time", &p.HoldingTime, parseNonNegativeFloat},
		{"other_energy_rate", &p.OtherEnergyRate, parseNonNegativeFloat},

		{"software_updates_cost", &p.SoftwareUpdatesCost, parseNonNegativeFloat},
		{"design_units_produced", &p.DesignUnitsProduced, parsePositiveFloat},
		{"tooling_consumables_cost", &p.ToolingConsumablesCost, parseNonNegativeFloat},
		{"equipment_maintenance_cost", &p.EquipmentMaintenanceCost, parseNonNegativeFloat},
		{"machining_cost_per_hour", &p.MachiningCostPerHour, parseNonNegativeFloat},
		{"machining_time", &p.MachiningTime, parseNonNegativeFloat},
		{"tooling_index", &p.ToolingIndex, parseNonNegativeFloat},

		{"admin_percentage", &p.AdminPercent, parsePercent},
		{"depr_percentage", &p.DeprPercent, parsePercent},
		{"admin_rate_per_kg", &p.AdminRatePerKg, parseNonNegativeFloat},
		{"depr_rate_per_kg", &p.DeprRatePerKg, parseNonNegativeFloat},

		{"fettling_labor_hours", &p.FettlingLabourHours, parseNonNegativeFloat},
		{"fettling_labor_rate", &p.FettlingLabourRate, parseNonNegativeFloat},
		{"fettling_equipment_cost", &p.FettlingEquipmentCost, parseNonNegativeFloat},
		{"heat_treatment_energy", &p.HeatTreatmentEnergy, parseNonNegativeFloat},
		{"heat_treatment_labor_hours", &p.HeatTreatmentLabourHours, parseNonNegativeFloat},
		{"heat_treatment_labor_rate", &p.HeatTreatmentLabourRate, parseNonNegativeFloat},
		{"ndt_cost_per_part", &p.NDTCostPerPart, parseNonNegativeFloat},
		{"pressure_testing_labor_hours", &p.PressureTestLabourHours, parseNonNegativeFloat},
		{"pressure_testing_labor_rate", &p.PressureTestLabourRate, parseNonNegativeFloat},
		{"pressure_testing_equipment_cost", &p.PressureTestEquipmentCost, parseNonNegativeFloat},
		{"inspection_labor_hours", &p.InspectionLabourHours, parseNonNegativeFloat},
		{"inspection_labor_rate", &p.InspectionLabourRate, parseNonNegativeFloat},
		{"radiography_cost_per_part", &p.RadiographyCostPerPart, parseNonNegativeFloat},
		{"plating_material_cost", &p.PlatingMaterialCost, parseNonNegativeFloat},
		{"plating_labor_hours", &p.PlatingLabourHours, parseNonNegativeFloat},
		{"plating_labor_rate", &p.PlatingLabourRate, parseNonNegativeFloat},
	}

	for _, f := range fields {
		value, err := f.parse(r.FormValue(f.name), f.name)
		if err != nil {
			return values, err
		}
		*f.dest = value
	}

	return values, nil
}

func formValueOr(r *http.Request, field, fallback string) string {
	if v := strings.TrimSpace(r.FormValue(field)); v != "" {
		return v
	}
	return fallback
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

func parsePercent(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100", field)
	}
	return value, nil
}
