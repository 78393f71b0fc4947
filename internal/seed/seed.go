package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/foundryworks/castcost/internal/costing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run mirrors the costing package's static lookup tables into the editable
// catalogue tables and creates the estimator defaults singleton. It is
// idempotent: existing rows are never touched, so admin edits survive
// restarts.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureMetals(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureFurnaces(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureRejectionFactors(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureEstimatorDefaults(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMetals(tx *sql.Tx, stats *Stats) error {
	for _, name := range costing.Metals() {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM metals WHERE name = ? LIMIT 1)`, name).Scan(&exists); err != nil {
			return fmt.Errorf("check metal %q existence: %w", name, err)
		}
		if exists {
			continue
		}

		density, err := costing.DefaultDensity(name)
		if err != nil {
			return fmt.Errorf("resolve density for %q: %w", name, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO metals (name, density, unit_cost, notes, active)
			VALUES (?, ?, ?, '', TRUE)
		`, name, density, costing.DefaultParams().UnitMetalCost); err != nil {
			return fmt.Errorf("insert metal %q: %w", name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureFurnaces(tx *sql.Tx, stats *Stats) error {
	for _, name := range costing.Furnaces() {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM furnaces WHERE name = ? LIMIT 1)`, name).Scan(&exists); err != nil {
			return fmt.Errorf("check furnace %q existence: %w", name, err)
		}
		if exists {
			continue
		}

		profile, err := costing.FurnaceProfile(name)
		if err != nil {
			return fmt.Errorf("resolve furnace profile for %q: %w", name, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO furnaces (name, melt_loss_low, melt_loss_high, efficiency_low, efficiency_high)
			VALUES (?, ?, ?, ?, ?)
		`, name, profile.MeltLossLow, profile.MeltLossHigh, profile.EfficiencyLow, profile.EfficiencyHigh); err != nil {
			return fmt.Errorf("insert furnace %q: %w", name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureRejectionFactors(tx *sql.Tx, stats *Stats) error {
	for _, entry := range costing.RejectionEntries() {
		var exists bool
		if err := tx.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM rejection_factors WHERE metal = ? AND quality = ? LIMIT 1)
		`, entry.Metal, entry.Quality).Scan(&exists); err != nil {
			return fmt.Errorf("check rejection factor %s/%s existence: %w", entry.Metal, entry.Quality, err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO rejection_factors (metal, quality, factor)
			VALUES (?, ?, ?)
		`, entry.Metal, entry.Quality, entry.Factor); err != nil {
			return fmt.Errorf("insert rejection factor %s/%s: %w", entry.Metal, entry.Quality, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureEstimatorDefaults(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM estimator_defaults WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check estimator defaults existence: %w", err)
	}
	if exists {
		return nil
	}

	paramsJSON, err := json.Marshal(costing.DefaultParams())
	if err != nil {
		return fmt.Errorf("marshal default params: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO estimator_defaults (
			id, params_json, material_model, labour_model, energy_model, tooling_model, overhead_model
		) VALUES (1, ?, ?, ?, ?, ?, ?)
	`, string(paramsJSON),
		costing.MaterialDetailed,
		costing.LabourAmortized,
		costing.EnergyTariff,
		costing.ToolingComponent,
		costing.OverheadPercentage,
	); err != nil {
		return fmt.Errorf("insert estimator defaults singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
