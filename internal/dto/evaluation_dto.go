package dto

import (
	"time"

	"github.com/noah-isme/ievms-go-api/internal/models"
)

// SubmitEvaluationRequest is the payload for recording a score. Score is a
// pointer so a missing field is distinguishable from a legitimate zero.
type SubmitEvaluationRequest struct {
	SubmissionID string   `json:"submissionId" validate:"required"`
	Score        *float64 `json:"score" validate:"required,gte=0,lte=100"`
	Remarks      string   `json:"remarks"`
}

// EvaluatorInfo summarizes the evaluator attached to an evaluation.
type EvaluatorInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// EvaluationResponse is returned to API clients when viewing evaluations.
// Evaluator is nil when the referenced account can no longer be resolved.
type EvaluationResponse struct {
	ID           uint           `json:"id"`
	Evaluator    *EvaluatorInfo `json:"evaluator"`
	SubmissionID string         `json:"submissionId"`
	Score        float64        `json:"score"`
	Remarks      string         `json:"remarks"`
	IsFinal      bool           `json:"isFinal"`
	SubmittedAt  time.Time      `json:"submittedAt"`
}

// SubmitEvaluationResponse wraps a freshly recorded evaluation.
type SubmitEvaluationResponse struct {
	Message    string             `json:"message"`
	Evaluation EvaluationResponse `json:"evaluation"`
}

// EvaluationListResponse wraps a listing with its count.
type EvaluationListResponse struct {
	Message     string               `json:"message"`
	Count       int                  `json:"count"`
	Evaluations []EvaluationResponse `json:"evaluations"`
}

// NewEvaluationResponse converts an Evaluation model plus its resolved evaluator into a DTO.
func NewEvaluationResponse(model models.Evaluation, evaluator *models.User) EvaluationResponse {
	response := EvaluationResponse{
		ID:           model.ID,
		SubmissionID: model.SubmissionID,
		Score:        model.Score,
		Remarks:      model.Remarks,
		IsFinal:      model.IsFinal,
		SubmittedAt:  model.SubmittedAt,
	}

	if evaluator != nil {
		response.Evaluator = &EvaluatorInfo{
			ID:    evaluator.ID,
			Name:  evaluator.Name,
			Email: evaluator.Email,
			Role:  evaluator.Role,
		}
	}

	return response
}
