package models

import (
	"database/sql"
	"time"
)

type Task struct {
	ID                  string
	ProjectID           string
	Title               string
	Description         sql.NullString
	Status              string
	Priority            string
	AssigneeName        sql.NullString
	StartDate           sql.NullTime
	DueDate             sql.NullTime
	CompletedAt         sql.NullTime
	DurationDays        sql.NullInt32
	PercentComplete     sql.NullInt32
	ExternalReferenceID sql.NullString
	Notes               sql.NullString
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
