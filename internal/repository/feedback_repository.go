package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/godilite/feedback360-server/internal/repository/models"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// CycleExists reports whether a cycle with the given id is registered.
func (s *FeedbackRepository) CycleExists(ctx context.Context, cycleID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM cycles WHERE id = ?)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, cycleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("query CycleExists: %w", err)
	}
	return exists, nil
}

// GetEvaluatedPersons returns every evaluated person in insertion order.
func (s *FeedbackRepository) GetEvaluatedPersons(ctx context.Context) ([]models.EvaluatedPerson, error) {
	const query = `
		SELECT id, name, title, area
		FROM evaluated_persons
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query GetEvaluatedPersons: %w", err)
	}
	defer rows.Close()

	var results []models.EvaluatedPerson
	for rows.Next() {
		var p models.EvaluatedPerson
		if err := rows.Scan(&p.ID, &p.Name, &p.Title, &p.Area); err != nil {
			return nil, fmt.Errorf("scan GetEvaluatedPersons row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetEvaluatedPersons: %w", err)
	}
	return results, nil
}

// GetCompetencies returns the competency catalogue in display order.
func (s *FeedbackRepository) GetCompetencies(ctx context.Context) ([]models.Competency, error) {
	const query = `
		SELECT id, title, question, type, dimension, grp
		FROM competencies
		ORDER BY position, rowid
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query GetCompetencies: %w", err)
	}
	defer rows.Close()

	var results []models.Competency
	for rows.Next() {
		var c models.Competency
		if err := rows.Scan(&c.ID, &c.Title, &c.Question, &c.Type, &c.Dimension, &c.Group); err != nil {
			return nil, fmt.Errorf("scan GetCompetencies row: %w", err)
		}
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetCompetencies: %w", err)
	}
	return results, nil
}

// GetEvaluations returns the submitted evaluations of one cycle.
func (s *FeedbackRepository) GetEvaluations(ctx context.Context, cycleID string) ([]models.Evaluation, error) {
	const query = `
		SELECT id, cycle_id, evaluated_id, relationship, comment
		FROM evaluations
		WHERE cycle_id = ?
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("query GetEvaluations: %w", err)
	}
	defer rows.Close()

	var results []models.Evaluation
	for rows.Next() {
		var e models.Evaluation
		if err := rows.Scan(&e.ID, &e.CycleID, &e.EvaluatedID, &e.Relationship, &e.Comment); err != nil {
			return nil, fmt.Errorf("scan GetEvaluations row: %w", err)
		}
		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetEvaluations: %w", err)
	}
	return results, nil
}

// GetResponses returns the answers belonging to evaluations of one cycle,
// in the order they were stored.
func (s *FeedbackRepository) GetResponses(ctx context.Context, cycleID string) ([]models.Response, error) {
	const query = `
		SELECT r.evaluation_id, r.competency_id, r.value, r.comment
		FROM responses AS r
		WHERE r.evaluation_id IN (SELECT id FROM evaluations WHERE cycle_id = ?)
		ORDER BY r.id
	`

	rows, err := s.db.QueryContext(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("query GetResponses: %w", err)
	}
	defer rows.Close()

	var results []models.Response
	for rows.Next() {
		var r models.Response
		if err := rows.Scan(&r.EvaluationID, &r.CompetencyID, &r.Value, &r.Comment); err != nil {
			return nil, fmt.Errorf("scan GetResponses row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetResponses: %w", err)
	}
	return results, nil
}
