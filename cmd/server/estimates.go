package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foundryworks/castcost/internal/costing"
)

type estimateListItem struct {
	Reference string
	CreatedAt string
	Title     string
	Metal     string
	Quantity  int64
	Total     float64
}

type estimatesViewData struct {
	baseViewData
	Query     string
	Estimates []estimateListItem
}

type estimateDetail struct {
	Reference   string
	CreatedAt   string
	Title       string
	Notes       string
	Metal       string
	Quantity    int64
	Params      costing.Params
	Breakdown   costing.Breakdown
	PostCasting costing.PostCasting
}

type estimateDetailViewData struct {
	baseViewData
	Detail    estimateDetail
	Lines     []costing.Line
	PostLines []costing.Line
}

func (s *server) handleEstimateSave(w http.ResponseWriter, r *http.Request) {
	values, result, err := s.computeEstimate(r)
	if err != nil {
		s.renderEstimateError(w, r, values, err)
		return
	}

	reference, err := s.saveEstimate(values, result)
	if err != nil {
		http.Error(w, "failed to save estimate", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/estimates/"+reference, http.StatusSeeOther)
}

// saveEstimate stores the full snapshot: inputs, breakdown and post-casting
// detail. The detail view reads the snapshot back without recalculating.
func (s *server) saveEstimate(values estimateFormValues, result costing.Result) (string, error) {
	paramsJSON, err := json.Marshal(values.Params)
	if err != nil {
		return "", fmt.Errorf("marshal params snapshot: %w", err)
	}
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return "", fmt.Errorf("marshal breakdown snapshot: %w", err)
	}
	postCastingJSON, err := json.Marshal(result.PostCasting)
	if err != nil {
		return "", fmt.Errorf("marshal post-casting snapshot: %w", err)
	}

	reference := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO estimates (reference, title, notes, metal, quantity, params_json, breakdown_json, post_casting_json, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, reference, values.Title, values.Notes, values.Params.Metal, int64(values.Params.Quantity),
		string(paramsJSON), string(breakdownJSON), string(postCastingJSON), result.Breakdown.Total)
	if err != nil {
		return "", fmt.Errorf("insert estimate: %w", err)
	}

	return reference, nil
}

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	estimates, err := s.listEstimates(query)
	if err != nil {
		http.Error(w, "failed to load estimates", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "estimates.html", estimatesViewData{
		Query:     query,
		Estimates: estimates,
	})
}

func (s *server) listEstimates(query string) ([]estimateListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT
			reference,
			created_at,
			COALESCE(title, ''),
			metal,
			quantity,
			total
		FROM estimates
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	estimates := make([]estimateListItem, 0)
	for rows.Next() {
		var item estimateListItem
		if err := rows.Scan(&item.Reference, &item.CreatedAt, &item.Title, &item.Metal, &item.Quantity, &item.Total); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		estimates = append(estimates, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}

	return estimates, nil
}

func (s *server) handleEstimateDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.getEstimateDetail(chi.URLParam(r, "reference"))
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load estimate", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "estimate_detail.html", estimateDetailViewData{
		Detail:    detail,
		Lines:     detail.Breakdown.Lines(),
		PostLines: detail.PostCasting.Lines(),
	})
}

func (s *server) getEstimateDetail(reference string) (estimateDetail, error) {
	var detail estimateDetail
	var paramsJSON, breakdownJSON, postCastingJSON string

	err := s.db.QueryRow(`
		SELECT reference, created_at, COALESCE(title, ''), COALESCE(notes, ''), metal, quantity,
			params_json, breakdown_json, post_casting_json
		FROM estimates
		WHERE reference = ?
	`, reference).Scan(
		&detail.Reference,
		&detail.CreatedAt,
		&detail.Title,
		&detail.Notes,
		&detail.Metal,
		&detail.Quantity,
		&paramsJSON,
		&breakdownJSON,
		&postCastingJSON,
	)
	if err != nil {
		return estimateDetail{}, err
	}

	if err := json.Unmarshal([]byte(paramsJSON), &detail.Params); err != nil {
		return estimateDetail{}, fmt.Errorf("unmarshal params snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(breakdownJSON), &detail.Breakdown); err != nil {
		return estimateDetail{}, fmt.Errorf("unmarshal breakdown snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(postCastingJSON), &detail.PostCasting); err != nil {
		return estimateDetail{}, fmt.Errorf("unmarshal post-casting snapshot: %w", err)
	}

	return detail, nil
}

func (s *server) handleEstimateExport(w http.ResponseWriter, r *http.Request) {
	detail, err := s.getEstimateDetail(chi.URLParam(r, "reference"))
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load estimate", http.StatusInternalServerError)
		return
	}

	filename := exportFilename(detail.Metal, detail.Quantity)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := costing.WriteCSV(w, detail.Breakdown); err != nil {
		http.Error(w, "failed to export estimate", http.StatusInternalServerError)
		return
	}
}

func exportFilename(metal string, quantity int64) string {
	safeMetal := strings.NewReplacer(" ", "_", "/", "-").Replace(metal)
	return fmt.Sprintf("casting_cost_%s_%dpcs.csv", safeMetal, quantity)
}
