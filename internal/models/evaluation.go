package models

import "time"

// Evaluation is a single immutable score recorded by an evaluator against an
// externally identified submission. The compound unique index carries the
// at-most-one-evaluation-per-(evaluator, submission) invariant; concurrent
// inserts for the same pair resolve at the database, not in the application.
type Evaluation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EvaluatorID  uint      `gorm:"not null;uniqueIndex:idx_evaluator_submission" json:"evaluator_id"`
	SubmissionID string    `gorm:"size:255;not null;uniqueIndex:idx_evaluator_submission" json:"submission_id"`
	Score        float64   `gorm:"not null" json:"score"`
	Remarks      string    `gorm:"type:text" json:"remarks"`
	IsFinal      bool      `gorm:"not null" json:"is_final"`
	SubmittedAt  time.Time `gorm:"not null;index" json:"submitted_at"`
}
