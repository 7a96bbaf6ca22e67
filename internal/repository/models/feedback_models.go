package models

import "database/sql"

type EvaluatedPerson struct {
	ID    string
	Name  string
	Title sql.NullString
	Area  sql.NullString
}

type Competency struct {
	ID        string
	Title     string
	Question  sql.NullString
	Type      string
	Dimension sql.NullString
	Group     sql.NullString
}

type Evaluation struct {
	ID           string
	CycleID      string
	EvaluatedID  string
	Relationship string
	Comment      sql.NullString
}

type Response struct {
	EvaluationID string
	CompetencyID string
	Value        sql.NullFloat64
	Comment      sql.NullString
}
