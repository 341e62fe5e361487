package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/ievms-go-api/internal/models"
)

// EvaluationRepository defines data operations for evaluations. Create relies
// on the compound unique index over (evaluator_id, submission_id): when two
// callers race on the same pair, exactly one insert succeeds and the loser
// sees gorm.ErrDuplicatedKey.
type EvaluationRepository interface {
	FindByEvaluatorAndSubmission(ctx context.Context, evaluatorID uint, submissionID string) (models.Evaluation, error)
	Create(ctx context.Context, evaluation *models.Evaluation) error
	ListByEvaluator(ctx context.Context, evaluatorID uint) ([]models.Evaluation, error)
	ListAll(ctx context.Context) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates the repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) FindByEvaluatorAndSubmission(ctx context.Context, evaluatorID uint, submissionID string) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.WithContext(ctx).
		Where("evaluator_id = ?", evaluatorID).
		Where("submission_id = ?", submissionID).
		First(&evaluation).Error; err != nil {
		return models.Evaluation{}, err
	}

	return evaluation, nil
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) ListByEvaluator(ctx context.Context, evaluatorID uint) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	if err := r.db.WithContext(ctx).
		Where("evaluator_id = ?", evaluatorID).
		Order("submitted_at DESC, id DESC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}

func (r *evaluationRepository) ListAll(ctx context.Context) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	if err := r.db.WithContext(ctx).
		Order("submitted_at DESC, id DESC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}
