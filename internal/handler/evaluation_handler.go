package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ievms-go-api/internal/dto"
	"github.com/noah-isme/ievms-go-api/internal/middleware"
	"github.com/noah-isme/ievms-go-api/internal/service"
	"github.com/noah-isme/ievms-go-api/internal/utils"
)

// EvaluationHandler manages evaluation endpoints.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler builds an evaluation handler instance.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

func (h *EvaluationHandler) Submit(c *fiber.Ctx) error {
	evaluatorID, ok := middleware.CurrentUserID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	var payload dto.SubmitEvaluationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Score must be a number between 0 and 100.")
	}

	evaluation, err := h.service.Submit(c.Context(), evaluatorID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SubmitEvaluationResponse{
		Message:    "Evaluation submitted successfully. Score is now final.",
		Evaluation: evaluation,
	})
}

func (h *EvaluationHandler) ListMine(c *fiber.Ctx) error {
	evaluatorID, ok := middleware.CurrentUserID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	evaluations, err := h.service.ListMine(c.Context(), evaluatorID)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(dto.EvaluationListResponse{
		Message:     "Evaluations retrieved successfully.",
		Count:       len(evaluations),
		Evaluations: evaluations,
	})
}

func (h *EvaluationHandler) ListAll(c *fiber.Ctx) error {
	evaluations, err := h.service.ListAll(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(dto.EvaluationListResponse{
		Message:     "All evaluations retrieved successfully.",
		Count:       len(evaluations),
		Evaluations: evaluations,
	})
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrDuplicateEvaluation):
		return utils.SendError(c, fiber.StatusConflict, "You have already submitted an evaluation for this submission. Scores are final and cannot be modified.")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(validationErrors))
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendServerError(c, "Error submitting evaluation.", err)
	}
}

func validationMessage(errs validator.ValidationErrors) string {
	for _, fieldError := range errs {
		switch fieldError.Field() {
		case "SubmissionID":
			return "Submission ID and score are required."
		case "Score":
			if fieldError.Tag() == "required" {
				return "Submission ID and score are required."
			}
			return "Score must be a number between 0 and 100."
		}
	}
	return errs.Error()
}
