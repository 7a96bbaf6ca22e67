package mocks

import (
	"context"
	"errors"

	"github.com/godilite/feedback360-server/internal/aggregation"
	"github.com/godilite/feedback360-server/internal/export"
	"github.com/godilite/feedback360-server/internal/service"
)

// MockResultsService is a mock implementation of the ResultsService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockResultsService struct {
	GetResultsFunc      func(ctx context.Context, cycleID string) ([]aggregation.Result, error)
	GetRankingFunc      func(ctx context.Context, cycleID string) ([]export.RankingEntry, error)
	GetPersonReportFunc func(ctx context.Context, cycleID, personID string) (service.PersonReport, error)
	GetCompetenciesFunc func(ctx context.Context) ([]aggregation.Competency, error)
}

// GetResults implements the ResultsService interface
func (m *MockResultsService) GetResults(ctx context.Context, cycleID string) ([]aggregation.Result, error) {
	if m.GetResultsFunc != nil {
		return m.GetResultsFunc(ctx, cycleID)
	}
	return nil, errors.New("GetResultsFunc not implemented")
}

// GetRanking implements the ResultsService interface
func (m *MockResultsService) GetRanking(ctx context.Context, cycleID string) ([]export.RankingEntry, error) {
	if m.GetRankingFunc != nil {
		return m.GetRankingFunc(ctx, cycleID)
	}
	return nil, errors.New("GetRankingFunc not implemented")
}

// GetPersonReport implements the ResultsService interface
func (m *MockResultsService) GetPersonReport(ctx context.Context, cycleID, personID string) (service.PersonReport, error) {
	if m.GetPersonReportFunc != nil {
		return m.GetPersonReportFunc(ctx, cycleID, personID)
	}
	return service.PersonReport{}, errors.New("GetPersonReportFunc not implemented")
}

// GetCompetencies implements the ResultsService interface
func (m *MockResultsService) GetCompetencies(ctx context.Context) ([]aggregation.Competency, error) {
	if m.GetCompetenciesFunc != nil {
		return m.GetCompetenciesFunc(ctx)
	}
	return nil, errors.New("GetCompetenciesFunc not implemented")
}
