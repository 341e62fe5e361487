package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/ievms-go-api/internal/dto"
	"github.com/noah-isme/ievms-go-api/internal/models"
	"github.com/noah-isme/ievms-go-api/internal/repository"
)

// ErrDuplicateEvaluation indicates the evaluator already scored this
// submission. Scores are final and cannot be modified.
var ErrDuplicateEvaluation = errors.New("evaluation already submitted for this submission")

// EvaluationService orchestrates evaluation submission and retrieval.
type EvaluationService interface {
	Submit(ctx context.Context, evaluatorID uint, payload dto.SubmitEvaluationRequest) (dto.EvaluationResponse, error)
	ListMine(ctx context.Context, evaluatorID uint) ([]dto.EvaluationResponse, error)
	ListAll(ctx context.Context) ([]dto.EvaluationResponse, error)
}

type evaluationService struct {
	evaluations repository.EvaluationRepository
	users       repository.UserRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEvaluationService constructs an EvaluationService instance.
func NewEvaluationService(evaluationRepo repository.EvaluationRepository, userRepo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		evaluations: evaluationRepo,
		users:       userRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
		now:         time.Now,
	}
}

func (s *evaluationService) Submit(ctx context.Context, evaluatorID uint, payload dto.SubmitEvaluationRequest) (dto.EvaluationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResponse{}, err
	}

	// Friendly pre-check. The compound unique index remains the source of
	// truth under concurrent submissions for the same pair.
	if _, err := s.evaluations.FindByEvaluatorAndSubmission(ctx, evaluatorID, payload.SubmissionID); err == nil {
		return dto.EvaluationResponse{}, ErrDuplicateEvaluation
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.EvaluationResponse{}, err
	}

	evaluation := models.Evaluation{
		EvaluatorID:  evaluatorID,
		SubmissionID: payload.SubmissionID,
		Score:        *payload.Score,
		Remarks:      payload.Remarks,
		IsFinal:      true,
		SubmittedAt:  s.now().UTC(),
	}

	if err := s.evaluations.Create(ctx, &evaluation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.EvaluationResponse{}, ErrDuplicateEvaluation
		}
		return dto.EvaluationResponse{}, err
	}

	s.logger.Info().
		Uint("evaluation_id", evaluation.ID).
		Uint("evaluator_id", evaluatorID).
		Str("submission_id", evaluation.SubmissionID).
		Msg("evaluation submitted")

	return dto.NewEvaluationResponse(evaluation, s.resolveEvaluator(ctx, evaluatorID)), nil
}

func (s *evaluationService) ListMine(ctx context.Context, evaluatorID uint) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.evaluations.ListByEvaluator(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}

	return s.join(ctx, evaluations)
}

func (s *evaluationService) ListAll(ctx context.Context) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.evaluations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.join(ctx, evaluations)
}

// join resolves evaluator display fields with one batch lookup. A missing
// evaluator degrades to a nil field rather than failing the listing.
func (s *evaluationService) join(ctx context.Context, evaluations []models.Evaluation) ([]dto.EvaluationResponse, error) {
	ids := make([]uint, 0, len(evaluations))
	seen := make(map[uint]struct{}, len(evaluations))
	for _, evaluation := range evaluations {
		if _, ok := seen[evaluation.EvaluatorID]; ok {
			continue
		}
		seen[evaluation.EvaluatorID] = struct{}{}
		ids = append(ids, evaluation.EvaluatorID)
	}

	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	responses := make([]dto.EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		var evaluator *models.User
		if user, ok := byID[evaluation.EvaluatorID]; ok {
			evaluator = &user
		} else {
			s.logger.Warn().
				Uint("evaluation_id", evaluation.ID).
				Uint("evaluator_id", evaluation.EvaluatorID).
				Msg("evaluator not found for evaluation")
		}
		responses = append(responses, dto.NewEvaluationResponse(evaluation, evaluator))
	}

	return responses, nil
}

func (s *evaluationService) resolveEvaluator(ctx context.Context, evaluatorID uint) *models.User {
	user, err := s.users.FindByID(ctx, evaluatorID)
	if err != nil {
		s.logger.Warn().Uint("evaluator_id", evaluatorID).Msg("evaluator not found for evaluation")
		return nil
	}

	return &user
}
