package costing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the breakdown as a two-column (Category, Amount) table.
// Amounts are written at full float64 precision so that ReadCSV reproduces
// the exact values; currency rounding happens only at render time.
func WriteCSV(w io.Writer, b Breakdown) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Category", "Amount"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, line := range b.Lines() {
		record := []string{line.Category, strconv.FormatFloat(line.Amount, 'g', -1, 64)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %q: %w", line.Category, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses a breakdown export back into its category->amount mapping.
func ReadCSV(r io.Reader) (map[string]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv export")
	}

	amounts := make(map[string]float64, len(records)-1)
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		amount, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse amount for %q: %w", record[0], err)
		}
		amounts[record[0]] = amount
	}

	return amounts, nil
}
