package seed

import (
	"database/sql"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"github.com/foundryworks/castcost/internal/costing"
	"github.com/foundryworks/castcost/internal/db"
	"github.com/foundryworks/castcost/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	// 5 metals + 4 furnaces + 6 rejection factors + 1 defaults singleton.
	const expectedFirstRun = 16

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != expectedFirstRun {
				t.Fatalf("expected %d inserts in first run, got %d", expectedFirstRun, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM metals`, 5)
	assertCount(t, database, `SELECT COUNT(*) FROM furnaces`, 4)
	assertCount(t, database, `SELECT COUNT(*) FROM rejection_factors`, 6)
	assertCount(t, database, `SELECT COUNT(*) FROM estimator_defaults WHERE id = 1`, 1)

	var density float64
	if err := database.QueryRow(`SELECT density FROM metals WHERE name = ?`, "Grey Iron").Scan(&density); err != nil {
		t.Fatalf("query grey iron density: %v", err)
	}
	if density != 7100 {
		t.Fatalf("expected grey iron density 7100, got %v", density)
	}
}

func TestRunPreservesAdminEdits(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-edit-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := Run(database); err != nil {
		t.Fatalf("first seed run: %v", err)
	}

	if _, err := database.Exec(`UPDATE metals SET unit_cost = 9.99 WHERE name = 'Steel'`); err != nil {
		t.Fatalf("update steel cost: %v", err)
	}

	if _, err := Run(database); err != nil {
		t.Fatalf("second seed run: %v", err)
	}

	var cost float64
	if err := database.QueryRow(`SELECT unit_cost FROM metals WHERE name = 'Steel'`).Scan(&cost); err != nil {
		t.Fatalf("query steel cost: %v", err)
	}
	if cost != 9.99 {
		t.Fatalf("seed overwrote admin edit: got %v", cost)
	}
}

func TestSeededDefaultsRoundTripThroughJSON(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-json-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := Run(database); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	var paramsJSON string
	if err := database.QueryRow(`SELECT params_json FROM estimator_defaults WHERE id = 1`).Scan(&paramsJSON); err != nil {
		t.Fatalf("query defaults: %v", err)
	}

	var params costing.Params
	if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
		t.Fatalf("unmarshal default params: %v", err)
	}

	want := costing.DefaultParams()
	if math.Abs(params.MassKg()-want.MassKg()) > 1e-9 {
		t.Fatalf("mass drifted through storage: %v vs %v", params.MassKg(), want.MassKg())
	}
	if params.Metal != want.Metal || params.Quantity != want.Quantity {
		t.Fatalf("unexpected stored defaults: %+v", params)
	}
}

func assertCount(t *testing.T, db *sql.DB, query string, want int) {
	t.Helper()

	var got int
	if err := db.QueryRow(query).Scan(&got); err != nil {
		t.Fatalf("count query %q: %v", query, err)
	}
	if got != want {
		t.Fatalf("count %q = %d, want %d", query, got, want)
	}
}
