package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func scale(id, title, dimension, group string) Competency {
	return Competency{ID: id, Title: title, Question: title + "?", Type: TypeScale, Dimension: dimension, Group: group}
}

func text(id, title string) Competency {
	return Competency{ID: id, Title: title, Question: "Tell us about " + title, Type: TypeOpenText}
}

func findResult(t *testing.T, results []Result, personID string) Result {
	t.Helper()
	for _, r := range results {
		if r.PersonID == personID {
			return r
		}
	}
	t.Fatalf("no result for person %q", personID)
	return Result{}
}

// TestMeanOfMeansVersusRawMean pins the two weighting policies against each
// other on the same data.
func TestMeanOfMeansVersusRawMean(t *testing.T) {
	snap := Snapshot{
		Persons: []Person{{ID: "p", Name: "P"}},
		Evaluations: []Evaluation{
			{ID: "e1", PersonID: "p", Relationship: "peer"},
			{ID: "e2", PersonID: "p", Relationship: "peer"},
			{ID: "e3", PersonID: "p", Relationship: "peer"},
		},
		Competencies: []Competency{
			scale("a", "Communication", "D1", "G1"),
			scale("b", "Ownership", "D1", "G1"),
		},
		Responses: []Response{
			{EvaluationID: "e1", CompetencyID: "a", Value: 4},
			{EvaluationID: "e1", CompetencyID: "b", Value: 2},
			{EvaluationID: "e2", CompetencyID: "b", Value: 2},
			{EvaluationID: "e3", CompetencyID: "b", Value: 2},
		},
	}

	results := Aggregate(snap)
	require.Len(t, results, 1)
	r := results[0]

	t.Run("per competency", func(t *testing.T) {
		assert.Equal(t, map[string]float64{"a": 4, "b": 2}, r.Competencies)
	})

	t.Run("dimension is mean of means", func(t *testing.T) {
		assert.Equal(t, 3.0, r.Dimensions["D1"])
		assert.NotEqual(t, 2.5, r.Dimensions["D1"])
	})

	t.Run("group and overall are mean of means", func(t *testing.T) {
		assert.Equal(t, 3.0, r.Groups["G1"])
		assert.Equal(t, 3.0, r.Overall)
	})

	t.Run("role is weighted by response count", func(t *testing.T) {
		assert.Equal(t, 2.5, r.Roles["peer"])
	})

	t.Run("cross tabs are weighted by response count", func(t *testing.T) {
		assert.Equal(t, Tally{Sum: 10, Count: 4}, r.DimensionRoles["D1"]["peer"])
		assert.Equal(t, Tally{Sum: 10, Count: 4}, r.GroupRoles["D1"]["G1"]["peer"])
		assert.Equal(t, 2.5, r.DimensionRoles["D1"]["peer"].Mean())
	})

	assert.Equal(t, 3, r.EvaluationCount)
	assert.Equal(t, 4, r.ScoredCount)
}

func TestRoleMean(t *testing.T) {
	snap := Snapshot{
		Persons: []Person{{ID: "p"}},
		Evaluations: []Evaluation{
			{ID: "e1", PersonID: "p", Relationship: "peer"},
			{ID: "e2", PersonID: "p", Relationship: "peer"},
			{ID: "e3", PersonID: "p", Relationship: "manager"},
		},
		Competencies: []Competency{
			scale("a", "A", "D1", "G1"),
			scale("b", "B", "D2", "G2"),
		},
		Responses: []Response{
			{EvaluationID: "e1", CompetencyID: "a", Value: 5},
			{EvaluationID: "e1", CompetencyID: "b", Value: 3},
			{EvaluationID: "e2", CompetencyID: "a", Value: 4},
			{EvaluationID: "e3", CompetencyID: "a", Value: 1},
		},
	}

	r := Aggregate(snap)[0]

	assert.Equal(t, 4.0, r.Roles["peer"])
	assert.Equal(t, 1.0, r.Roles["manager"])
	assert.Equal(t, Tally{Sum: 9, Count: 2}, r.DimensionRoles["D1"]["peer"])
	assert.Equal(t, Tally{Sum: 3, Count: 1}, r.DimensionRoles["D2"]["peer"])
	assert.Equal(t, Tally{Sum: 1, Count: 1}, r.DimensionRoles["D1"]["manager"])
	assert.Equal(t, Tally{Sum: 3, Count: 1}, r.GroupRoles["D2"]["G2"]["peer"])
	_, ok := r.DimensionRoles["D2"]["manager"]
	assert.False(t, ok)
}

func TestRoleWithoutScoredResponsesIsOmitted(t *testing.T) {
	snap := Snapshot{
		Persons: []Person{{ID: "p"}},
		Evaluations: []Evaluation{
			{ID: "e1", PersonID: "p", Relationship: "peer"},
			{ID: "e2", PersonID: "p", Relationship: "self"},
		},
		Competencies: []Competency{scale("a", "A", "D", "G")},
		Responses:    []Response{{EvaluationID: "e1", CompetencyID: "a", Value: 3}},
	}

	r := Aggregate(snap)[0]

	assert.Equal(t, map[string]float64{"peer": 3}, r.Roles)
	assert.Equal(t, 2, r.EvaluationCount)
}

func TestSkillsMergeByTitle(t *testing.T) {
	snap := Snapshot{
		Persons:     []Person{{ID: "p"}},
		Evaluations: []Evaluation{{ID: "e1", PersonID: "p", Relationship: "peer"}},
		Competencies: []Competency{
			scale("lead-manager", "Leadership", "People", "Lead"),
			scale("lead-peer", "Leadership", "People", "Lead"),
			scale("focus", "Focus", "Delivery", ""),
		},
		Responses: []Response{
			{EvaluationID: "e1", CompetencyID: "lead-manager", Value: 5},
			{EvaluationID: "e1", CompetencyID: "lead-peer", Value: 3},
			{EvaluationID: "e1", CompetencyID: "lead-peer", Value: 3},
			{EvaluationID: "e1", CompetencyID: "focus", Value: 2},
		},
	}

	r := Aggregate(snap)[0]

	assert.Equal(t, 4.0, r.Skills["Leadership"])
	assert.Equal(t, 2.0, r.Skills["Focus"])

	t.Run("missing group uses explicit key", func(t *testing.T) {
		assert.Equal(t, 2.0, r.Groups[NoGroup])
		assert.Equal(t, 4.0, r.Groups["Lead"])
		assert.Equal(t, Tally{Sum: 2, Count: 1}, r.GroupRoles["Delivery"][NoGroup]["peer"])
	})

	t.Run("overall counts each competency once", func(t *testing.T) {
		assert.InDelta(t, (5.0+3.0+2.0)/3.0, r.Overall, 1e-12)
	})
}

func TestCompetenciesWithoutResponsesAreOmitted(t *testing.T) {
	snap := Snapshot{
		Persons:     []Person{{ID: "p"}},
		Evaluations: []Evaluation{{ID: "e1", PersonID: "p", Relationship: "peer"}},
		Competencies: []Competency{
			scale("a", "A", "D1", "G1"),
			scale("b", "B", "D2", "G2"),
		},
		Responses: []Response{{EvaluationID: "e1", CompetencyID: "a", Value: 3}},
	}

	r := Aggregate(snap)[0]

	assert.NotContains(t, r.Competencies, "b")
	assert.NotContains(t, r.Dimensions, "D2")
	assert.NotContains(t, r.Groups, "G2")
	assert.NotContains(t, r.Skills, "B")
	assert.NotContains(t, r.DimensionRoles, "D2")
}

func TestOpenTextOnly(t *testing.T) {
	snap := Snapshot{
		Persons:     []Person{{ID: "q", Name: "Q"}},
		Evaluations: []Evaluation{{ID: "e1", PersonID: "q", Relationship: "peer"}},
		Competencies: []Competency{
			text("strengths", "Strengths"),
			scale("a", "A", "D", "G"),
		},
		Responses: []Response{
			{EvaluationID: "e1", CompetencyID: "strengths", Value: 5, Comment: "  Great mentor  "},
		},
	}

	results := Aggregate(snap)
	require.Len(t, results, 1)
	r := results[0]

	assert.Equal(t, 0.0, r.Overall)
	assert.Equal(t, 0, r.ScoredCount)
	assert.Empty(t, r.Competencies)
	assert.Empty(t, r.Dimensions)
	assert.Empty(t, r.Skills)
	assert.Empty(t, r.Groups)
	assert.Empty(t, r.Roles)
	assert.Empty(t, r.DimensionRoles)
	assert.Empty(t, r.GroupRoles)
	assert.NotNil(t, r.Competencies)

	require.Contains(t, r.OpenText, "strengths")
	assert.Equal(t, OpenTextAnswers{
		Title:    "Strengths",
		Question: "Tell us about Strengths",
		Comments: []string{"Great mentor"},
	}, r.OpenText["strengths"])
}

func TestOpenTextPayload(t *testing.T) {
	snap := Snapshot{
		Persons: []Person{{ID: "p"}},
		Evaluations: []Evaluation{
			{ID: "e1", PersonID: "p", Relationship: "peer"},
			{ID: "e2", PersonID: "p", Relationship: "manager"},
		},
		Competencies: []Competency{
			text("improve", "Improve"),
			text("keep", "Keep"),
		},
		Responses: []Response{
			{EvaluationID: "e2", CompetencyID: "keep", Comment: "second first"},
			{EvaluationID: "e1", CompetencyID: "improve", Comment: "   "},
			{EvaluationID: "e1", CompetencyID: "keep", Comment: "then this"},
			{EvaluationID: "e2", CompetencyID: "improve", Comment: "\t\n"},
		},
	}

	r := Aggregate(snap)[0]

	assert.NotContains(t, r.OpenText, "improve")
	assert.Equal(t, []string{"second first", "then this"}, r.OpenText["keep"].Comments)
}

func TestEvaluationComments(t *testing.T) {
	snap := Snapshot{
		Persons: []Person{{ID: "p"}},
		Evaluations: []Evaluation{
			{ID: "e1", PersonID: "p", Relationship: "peer", Comment: " Solid quarter "},
			{ID: "e2", PersonID: "p", Relationship: "peer", Comment: "   "},
			{ID: "e3", PersonID: "p", Relationship: "self"},
			{ID: "e4", PersonID: "p", Relationship: "manager", Comment: "Keep going"},
		},
	}

	r := Aggregate(snap)[0]

	assert.Equal(t, []string{"Solid quarter", "Keep going"}, r.Comments)
	assert.Equal(t, 4, r.EvaluationCount)
	assert.Equal(t, 0.0, r.Overall)
}

func TestPersonsWithoutEvaluationsAreExcluded(t *testing.T) {
	snap := Snapshot{
		Persons: []Person{
			{ID: "rated", Name: "Rated"},
			{ID: "unrated", Name: "Unrated"},
		},
		Evaluations: []Evaluation{{ID: "e1", PersonID: "rated", Relationship: "peer"}},
	}

	results := Aggregate(snap)

	require.Len(t, results, 1)
	assert.Equal(t, "rated", results[0].PersonID)
	assert.Equal(t, "Rated", results[0].Name)
}

func TestDanglingReferencesAreSkipped(t *testing.T) {
	snap := Snapshot{
		Persons:     []Person{{ID: "p"}},
		Evaluations: []Evaluation{{ID: "e1", PersonID: "p", Relationship: "peer"}},
		Competencies: []Competency{
			scale("a", "A", "D", "G"),
			{ID: "weird", Title: "Weird", Type: "checkbox"},
		},
		Responses: []Response{
			{EvaluationID: "e1", CompetencyID: "a", Value: 4},
			{EvaluationID: "e1", CompetencyID: "ghost", Value: 1},
			{EvaluationID: "missing", CompetencyID: "a", Value: 1},
			{EvaluationID: "e1", CompetencyID: "weird", Value: 1},
		},
	}

	report := New().Run(snap)

	require.Len(t, report.Results, 1)
	r := report.Results[0]
	assert.Equal(t, map[string]float64{"a": 4}, r.Competencies)
	assert.Equal(t, 4.0, r.Overall)
	assert.Equal(t, 4.0, r.Roles["peer"])
	assert.Equal(t, 1, r.ScoredCount)
	assert.Equal(t, 3, report.Skipped)
}

func TestUnansweredScaleResponsesAreSkipped(t *testing.T) {
	snap := Snapshot{
		Persons:      []Person{{ID: "p"}},
		Evaluations:  []Evaluation{{ID: "e1", PersonID: "p", Relationship: "peer"}, {ID: "e2", PersonID: "p", Relationship: "peer"}},
		Competencies: []Competency{scale("a", "A", "D", "G"), text("t", "T")},
		Responses: []Response{
			{EvaluationID: "e1", CompetencyID: "a", Value: 4},
			{EvaluationID: "e2", CompetencyID: "a", Comment: "n/a", Unanswered: true},
			{EvaluationID: "e2", CompetencyID: "t", Comment: "Kind", Unanswered: true},
		},
	}

	report := New().Run(snap)

	require.Len(t, report.Results, 1)
	r := report.Results[0]
	assert.Equal(t, map[string]float64{"a": 4}, r.Competencies)
	assert.Equal(t, 4.0, r.Overall)
	assert.Equal(t, 4.0, r.Roles["peer"])
	assert.Equal(t, 1, r.DimensionRoles["D"]["peer"].Count)
	assert.Equal(t, 1, r.ScoredCount)
	assert.Equal(t, []string{"Kind"}, r.OpenText["t"].Comments)
	assert.Equal(t, 1, report.Skipped)
}

func TestDuplicateIDsLastWriteWins(t *testing.T) {
	snap := Snapshot{
		Persons:     []Person{{ID: "p"}},
		Evaluations: []Evaluation{{ID: "e1", PersonID: "p", Relationship: "peer"}},
		Competencies: []Competency{
			scale("a", "Old", "OldDim", "OldGroup"),
			scale("a", "New", "NewDim", "NewGroup"),
		},
		Responses: []Response{{EvaluationID: "e1", CompetencyID: "a", Value: 3}},
	}

	r := Aggregate(snap)[0]

	assert.Equal(t, map[string]float64{"NewDim": 3}, r.Dimensions)
	assert.Equal(t, map[string]float64{"New": 3}, r.Skills)
	assert.Equal(t, 3.0, r.Overall)

	t.Run("malformed duplicate removes the competency", func(t *testing.T) {
		snap.Competencies = append(snap.Competencies, Competency{ID: "a", Type: "unknown"})
		r := Aggregate(snap)[0]
		assert.Empty(t, r.Competencies)
	})
}

func TestSortIsStableByOverallDescending(t *testing.T) {
	snap := Snapshot{
		Persons: []Person{
			{ID: "low"}, {ID: "tie-1"}, {ID: "high"}, {ID: "tie-2"}, {ID: "none"},
		},
		Evaluations: []Evaluation{
			{ID: "e-low", PersonID: "low", Relationship: "peer"},
			{ID: "e-t1", PersonID: "tie-1", Relationship: "peer"},
			{ID: "e-high", PersonID: "high", Relationship: "peer"},
			{ID: "e-t2", PersonID: "tie-2", Relationship: "peer"},
			{ID: "e-none", PersonID: "none", Relationship: "peer"},
		},
		Competencies: []Competency{scale("a", "A", "D", "G")},
		Responses: []Response{
			{EvaluationID: "e-low", CompetencyID: "a", Value: 1},
			{EvaluationID: "e-t1", CompetencyID: "a", Value: 3},
			{EvaluationID: "e-high", CompetencyID: "a", Value: 5},
			{EvaluationID: "e-t2", CompetencyID: "a", Value: 3},
		},
	}

	results := Aggregate(snap)

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.PersonID
	}
	assert.Equal(t, []string{"high", "tie-1", "tie-2", "low", "none"}, ids)
}

func TestInputsAreNotMutated(t *testing.T) {
	snap := sampleSnapshot()
	before := sampleSnapshot()

	_ = Aggregate(snap)

	assert.Equal(t, before, snap)
}

func TestRepeatedRunsAreIdentical(t *testing.T) {
	snap := sampleSnapshot()

	first := Aggregate(snap)
	second := Aggregate(snap)
	assert.Equal(t, first, second)

	t.Run("parallel run matches sequential", func(t *testing.T) {
		engine := New(WithParallelism(4), WithLogger(zaptest.NewLogger(t)))
		for range 5 {
			assert.Equal(t, first, engine.Run(snap).Results)
		}
	})
}

func TestEmptySnapshot(t *testing.T) {
	report := New().Run(Snapshot{})

	assert.Empty(t, report.Results)
	assert.NotNil(t, report.Results)
	assert.Zero(t, report.Skipped)
}

func sampleSnapshot() Snapshot {
	snap := Snapshot{
		Competencies: []Competency{
			scale("c1", "Communication", "People", "Collaboration"),
			scale("c2", "Feedback", "People", "Collaboration"),
			scale("c3", "Planning", "Delivery", "Execution"),
			scale("c4", "Communication", "People", ""),
			text("t1", "Strengths"),
		},
	}
	roles := []string{"manager", "peer", "peer", "subordinate", "self"}
	names := []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Fabio", "Gabi"}
	for pi, name := range names {
		pid := "p" + name
		snap.Persons = append(snap.Persons, Person{ID: pid, Name: name, Title: "Engineer", Area: "Platform"})
		for ei, role := range roles {
			if (pi+ei)%4 == 0 {
				continue
			}
			eid := pid + "-e" + string(rune('a'+ei))
			snap.Evaluations = append(snap.Evaluations, Evaluation{ID: eid, PersonID: pid, Relationship: role, Comment: "note " + eid})
			for ci, c := range snap.Competencies {
				snap.Responses = append(snap.Responses, Response{
					EvaluationID: eid,
					CompetencyID: c.ID,
					Value:        float64((pi*7+ei*3+ci)%5 + 1),
					Comment:      "comment " + eid,
				})
			}
		}
	}
	return snap
}

func BenchmarkAggregate(b *testing.B) {
	snap := sampleSnapshot()
	engine := New()

	b.ReportAllocs()

	for b.Loop() {
		_ = engine.Run(snap)
	}
}
