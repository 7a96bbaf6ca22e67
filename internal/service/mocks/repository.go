package mocks

import (
	"context"
	"errors"

	"github.com/godilite/feedback360-server/internal/repository/models"
)

// MockFeedbackRepository is a mock implementation of the FeedbackRepository
// interface for testing the service layer.
type MockFeedbackRepository struct {
	CycleExistsFunc         func(ctx context.Context, cycleID string) (bool, error)
	GetEvaluatedPersonsFunc func(ctx context.Context) ([]models.EvaluatedPerson, error)
	GetCompetenciesFunc     func(ctx context.Context) ([]models.Competency, error)
	GetEvaluationsFunc      func(ctx context.Context, cycleID string) ([]models.Evaluation, error)
	GetResponsesFunc        func(ctx context.Context, cycleID string) ([]models.Response, error)
}

// CycleExists implements the FeedbackRepository interface
func (m *MockFeedbackRepository) CycleExists(ctx context.Context, cycleID string) (bool, error) {
	if m.CycleExistsFunc != nil {
		return m.CycleExistsFunc(ctx, cycleID)
	}
	return false, errors.New("CycleExistsFunc not implemented")
}

// GetEvaluatedPersons implements the FeedbackRepository interface
func (m *MockFeedbackRepository) GetEvaluatedPersons(ctx context.Context) ([]models.EvaluatedPerson, error) {
	if m.GetEvaluatedPersonsFunc != nil {
		return m.GetEvaluatedPersonsFunc(ctx)
	}
	return nil, errors.New("GetEvaluatedPersonsFunc not implemented")
}

// GetCompetencies implements the FeedbackRepository interface
func (m *MockFeedbackRepository) GetCompetencies(ctx context.Context) ([]models.Competency, error) {
	if m.GetCompetenciesFunc != nil {
		return m.GetCompetenciesFunc(ctx)
	}
	return nil, errors.New("GetCompetenciesFunc not implemented")
}

// GetEvaluations implements the FeedbackRepository interface
func (m *MockFeedbackRepository) GetEvaluations(ctx context.Context, cycleID string) ([]models.Evaluation, error) {
	if m.GetEvaluationsFunc != nil {
		return m.GetEvaluationsFunc(ctx, cycleID)
	}
	return nil, errors.New("GetEvaluationsFunc not implemented")
}

// GetResponses implements the FeedbackRepository interface
func (m *MockFeedbackRepository) GetResponses(ctx context.Context, cycleID string) ([]models.Response, error) {
	if m.GetResponsesFunc != nil {
		return m.GetResponsesFunc(ctx, cycleID)
	}
	return nil, errors.New("GetResponsesFunc not implemented")
}
