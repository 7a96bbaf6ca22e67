package service

import (
	"context"

	"github.com/godilite/feedback360-server/internal/repository/models"
)

// FeedbackRepository defines the read operations the results service needs.
type FeedbackRepository interface {
	CycleExists(ctx context.Context, cycleID string) (bool, error)
	GetEvaluatedPersons(ctx context.Context) ([]models.EvaluatedPerson, error)
	GetCompetencies(ctx context.Context) ([]models.Competency, error)
	GetEvaluations(ctx context.Context, cycleID string) ([]models.Evaluation, error)
	GetResponses(ctx context.Context, cycleID string) ([]models.Response, error)
}
