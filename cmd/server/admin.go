package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foundryworks/castcost/internal/costing"
)

type adminMetal struct {
	ID       int64
	Name     string
	Density  float64
	UnitCost float64
	Notes    string
	Active   bool
}

type adminMetalsViewData struct {
	baseViewData
	Metals []adminMetal
}

type adminModelsViewData struct {
	baseViewData
	Models modelSelection
}

func (s *server) handleAdminMetalsForm(w http.ResponseWriter, r *http.Request) {
	metals, err := s.listAdminMetals()
	if err != nil {
		http.Error(w, "failed to load metals", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_metals.html", adminMetalsViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Metals: metals,
	})
}

func (s *server) handleAdminMetalsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	metal, err := parseMetalForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/metals?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO metals (name, density, unit_cost, notes, active)
		VALUES (?, ?, ?, ?, TRUE)
	`, metal.Name, metal.Density, metal.UnitCost, metal.Notes)
	if err != nil {
		http.Error(w, "failed to create metal", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/metals?success=Metal+created", http.StatusSeeOther)
}

func (s *server) handleAdminMetalsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid metal id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	metal, err := parseMetalForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/metals?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	metal.Active = r.FormValue("active") == "1"

	result, err := s.db.Exec(`
		UPDATE metals
		SET
			name = ?,
			density = ?,
			unit_cost = ?,
			notes = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, metal.Name, metal.Density, metal.UnitCost, metal.Notes, metal.Active, id)
	if err != nil {
		http.Error(w, "failed to update metal", http.StatusInternalServerError)
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		http.Error(w, "failed to update metal", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/metals?success=Metal+updated", http.StatusSeeOther)
}

func (s *server) handleAdminModelsForm(w http.ResponseWriter, r *http.Request) {
	_, models, err := s.loadEstimatorDefaults()
	if err != nil {
		http.Error(w, "failed to load model config", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_models.html", adminModelsViewData{Models: models})
}

func (s *server) handleAdminModelsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	models := modelSelection{
		Material: strings.TrimSpace(r.FormValue("material_model")),
		Labour:   strings.TrimSpace(r.FormValue("labour_model")),
		Energy:   strings.TrimSpace(r.FormValue("energy_model")),
		Tooling:  strings.TrimSpace(r.FormValue("tooling_model")),
		Overhead: strings.TrimSpace(r.FormValue("overhead_model")),
	}

	// Reject unknown variant names before they reach storage.
	if _, err := costing.ModelsFromNames(models.Material, models.Labour, models.Energy, models.Tooling, models.Overhead); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, "admin_models.html", adminModelsViewData{
			baseViewData: baseViewData{ErrorMessage: err.Error()},
			Models:       models,
		})
		return
	}

	_, err := s.db.Exec(`
		UPDATE estimator_defaults
		SET
			material_model = ?,
			labour_model = ?,
			energy_model = ?,
			tooling_model = ?,
			overhead_model = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, models.Material, models.Labour, models.Energy, models.Tooling, models.Overhead)
	if err != nil {
		http.Error(w, "failed to save model config", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_models.html", adminModelsViewData{
		baseViewData: baseViewData{SuccessMessage: "Model configuration saved."},
		Models:       models,
	})
}

// handleAdminDefaultsSave stores the submitted estimate inputs and model
// selection as the estimator defaults that pre-fill the form.
func (s *server) handleAdminDefaultsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	values, err := parseEstimateForm(r)
	if err != nil {
		s.renderEstimateError(w, r, values, err)
		return
	}
	if _, err := costing.ModelsFromNames(
		values.Models.Material,
		values.Models.Labour,
		values.Models.Energy,
		values.Models.Tooling,
		values.Models.Overhead,
	); err != nil {
		s.renderEstimateError(w, r, values, err)
		return
	}

	paramsJSON, err := json.Marshal(values.Params)
	if err != nil {
		http.Error(w, "failed to save defaults", http.StatusInternalServerError)
		return
	}

	_, err = s.db.Exec(`
		UPDATE estimator_defaults
		SET
			params_json = ?,
			material_model = ?,
			labour_model = ?,
			energy_model = ?,
			tooling_model = ?,
			overhead_model = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, string(paramsJSON), values.Models.Material, values.Models.Labour,
		values.Models.Energy, values.Models.Tooling, values.Models.Overhead)
	if err != nil {
		http.Error(w, "failed to save defaults", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/?success=Defaults+saved", http.StatusSeeOther)
}

func (s *server) listAdminMetals() ([]adminMetal, error) {
	rows, err := s.db.Query(`
		SELECT id, name, density, unit_cost, COALESCE(notes, ''), active
		FROM metals
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query metals: %w", err)
	}
	defer rows.Close()

	metals := make([]adminMetal, 0)
	for rows.Next() {
		var m adminMetal
		if err := rows.Scan(&m.ID, &m.Name, &m.Density, &m.UnitCost, &m.Notes, &m.Active); err != nil {
			return nil, fmt.Errorf("scan metal: %w", err)
		}
		metals = append(metals, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metals: %w", err)
	}

	return metals, nil
}

func parseMetalForm(r *http.Request) (adminMetal, error) {
	metal := adminMetal{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Notes: strings.TrimSpace(r.FormValue("notes")),
	}

	if metal.Name == "" {
		return metal, fmt.Errorf("name is required")
	}

	var err error
	if metal.Density, err = parsePositiveFloat(r.FormValue("density"), "density"); err != nil {
		return metal, err
	}
	if metal.UnitCost, err = parseNonNegativeFloat(r.FormValue("unit_cost"), "unit_cost"); err != nil {
		return metal, err
	}

	return metal, nil
}
