// Package export reshapes aggregation results into the arrays charts, tables
// and CSV exports consume.
package export

import (
	"sort"

	"github.com/godilite/feedback360-server/internal/aggregation"
)

// RankingEntry is one bar of the ranking chart.
type RankingEntry struct {
	Rank            int     `json:"rank"`
	PersonID        string  `json:"person_id"`
	Name            string  `json:"name"`
	Area            string  `json:"area"`
	Overall         float64 `json:"overall"`
	EvaluationCount int     `json:"evaluation_count"`
	HasScores       bool    `json:"has_scores"`
}

// Ranking numbers results in the order given. Results are already sorted by
// the engine, so ties keep their relative order.
func Ranking(results []aggregation.Result) []RankingEntry {
	out := make([]RankingEntry, len(results))
	for i, r := range results {
		out[i] = RankingEntry{
			Rank:            i + 1,
			PersonID:        r.PersonID,
			Name:            r.Name,
			Area:            r.Area,
			Overall:         r.Overall,
			EvaluationCount: r.EvaluationCount,
			HasScores:       r.ScoredCount > 0,
		}
	}
	return out
}

// Point is a labelled value on a radar axis.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RadarData feeds the per-dimension and per-skill radar charts.
type RadarData struct {
	Dimensions []Point `json:"dimensions"`
	Skills     []Point `json:"skills"`
}

// Radar lays out dimensions and skills in competency catalogue order,
// skipping axes the person has no data for.
func Radar(r aggregation.Result, competencies []aggregation.Competency) RadarData {
	data := RadarData{Dimensions: []Point{}, Skills: []Point{}}
	seenDim := make(map[string]bool)
	seenSkill := make(map[string]bool)

	for _, c := range ScaleColumns(competencies) {
		if v, ok := r.Dimensions[c.Dimension]; ok && !seenDim[c.Dimension] {
			seenDim[c.Dimension] = true
			data.Dimensions = append(data.Dimensions, Point{Label: c.Dimension, Value: v})
		}
		if v, ok := r.Skills[c.Title]; ok && !seenSkill[c.Title] {
			seenSkill[c.Title] = true
			data.Skills = append(data.Skills, Point{Label: c.Title, Value: v})
		}
	}
	return data
}

// RoleCell is a dimension bar within a role, with its sample size.
type RoleCell struct {
	Dimension string  `json:"dimension"`
	Mean      float64 `json:"mean"`
	Count     int     `json:"count"`
}

// RoleBar is one relationship role in the bar-by-role chart.
type RoleBar struct {
	Role       string     `json:"role"`
	Mean       float64    `json:"mean"`
	Count      int        `json:"count"`
	Dimensions []RoleCell `json:"dimensions"`
}

// RoleBars lists roles alphabetically with their dimension breakdown.
func RoleBars(r aggregation.Result) []RoleBar {
	roles := make([]string, 0, len(r.Roles))
	for role := range r.Roles {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	dims := make([]string, 0, len(r.DimensionRoles))
	for d := range r.DimensionRoles {
		dims = append(dims, d)
	}
	sort.Strings(dims)

	out := make([]RoleBar, 0, len(roles))
	for _, role := range roles {
		bar := RoleBar{Role: role, Mean: r.Roles[role], Dimensions: []RoleCell{}}
		for _, d := range dims {
			t, ok := r.DimensionRoles[d][role]
			if !ok {
				continue
			}
			bar.Count += t.Count
			bar.Dimensions = append(bar.Dimensions, RoleCell{Dimension: d, Mean: t.Mean(), Count: t.Count})
		}
		out = append(out, bar)
	}
	return out
}

// CompetencyRow joins a per-competency mean with its metadata.
type CompetencyRow struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Dimension string  `json:"dimension"`
	Group     string  `json:"group"`
	Mean      float64 `json:"mean"`
}

// CompetencyTable returns one row per scale competency the person has a mean
// for, in catalogue order.
func CompetencyTable(r aggregation.Result, competencies []aggregation.Competency) []CompetencyRow {
	rows := make([]CompetencyRow, 0, len(r.Competencies))
	for _, c := range ScaleColumns(competencies) {
		mean, ok := r.Competencies[c.ID]
		if !ok {
			continue
		}
		rows = append(rows, CompetencyRow{
			ID:        c.ID,
			Title:     c.Title,
			Dimension: c.Dimension,
			Group:     c.Group,
			Mean:      mean,
		})
	}
	return rows
}
