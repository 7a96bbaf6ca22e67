package service

import (
	"github.com/godilite/feedback360-server/internal/aggregation"
	"github.com/godilite/feedback360-server/internal/repository/models"
)

func toPersons(rows []models.EvaluatedPerson) []aggregation.Person {
	out := make([]aggregation.Person, len(rows))
	for i, r := range rows {
		out[i] = aggregation.Person{
			ID:    r.ID,
			Name:  r.Name,
			Title: r.Title.String,
			Area:  r.Area.String,
		}
	}
	return out
}

func toCompetencies(rows []models.Competency) []aggregation.Competency {
	out := make([]aggregation.Competency, len(rows))
	for i, r := range rows {
		out[i] = aggregation.Competency{
			ID:        r.ID,
			Title:     r.Title,
			Question:  r.Question.String,
			Type:      aggregation.CompetencyType(r.Type),
			Dimension: r.Dimension.String,
			Group:     r.Group.String,
		}
	}
	return out
}

func toEvaluations(rows []models.Evaluation) []aggregation.Evaluation {
	out := make([]aggregation.Evaluation, len(rows))
	for i, r := range rows {
		out[i] = aggregation.Evaluation{
			ID:           r.ID,
			PersonID:     r.EvaluatedID,
			Relationship: r.Relationship,
			Comment:      r.Comment.String,
		}
	}
	return out
}

func toResponses(rows []models.Response) []aggregation.Response {
	out := make([]aggregation.Response, len(rows))
	for i, r := range rows {
		out[i] = aggregation.Response{
			EvaluationID: r.EvaluationID,
			CompetencyID: r.CompetencyID,
			Value:        r.Value.Float64,
			Comment:      r.Comment.String,
			Unanswered:   !r.Value.Valid,
		}
	}
	return out
}
