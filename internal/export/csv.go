package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/godilite/feedback360-server/internal/aggregation"
)

var csvFixedColumns = []string{"Name", "Title", "Area", "Evaluations", "Overall"}

// ScaleColumns returns the scale competencies in catalogue order, each id once.
// A duplicated id takes the position of its first entry and the fields of its
// last, the same resolution the aggregation engine applies. This is the fixed
// column order of the CSV export.
func ScaleColumns(competencies []aggregation.Competency) []aggregation.Competency {
	latest := make(map[string]aggregation.Competency, len(competencies))
	order := make([]string, 0, len(competencies))
	for _, c := range competencies {
		if _, seen := latest[c.ID]; !seen {
			order = append(order, c.ID)
		}
		latest[c.ID] = c
	}

	cols := make([]aggregation.Competency, 0, len(order))
	for _, id := range order {
		if c := latest[id]; c.Type == aggregation.TypeScale {
			cols = append(cols, c)
		}
	}
	return cols
}

// WriteCSV writes one row per result. Competency cells are empty when the
// person has no mean for that competency.
func WriteCSV(w io.Writer, results []aggregation.Result, competencies []aggregation.Competency) error {
	cols := ScaleColumns(competencies)

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(csvFixedColumns)+len(cols))
	header = append(header, csvFixedColumns...)
	for _, c := range cols {
		header = append(header, c.Title)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range results {
		row := make([]string, 0, len(header))
		row = append(row,
			r.Name,
			r.Title,
			r.Area,
			strconv.Itoa(r.EvaluationCount),
			formatScore(r.Overall),
		)
		for _, c := range cols {
			mean, ok := r.Competencies[c.ID]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatScore(mean))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", r.PersonID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
