package handler_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ievms-go-api/internal/dto"
	"github.com/noah-isme/ievms-go-api/internal/models"
)

func TestEvaluationSubmitThenDuplicate(t *testing.T) {
	app, _, _ := setupApp(t)
	evaluator := registerUser(t, app, "Eve", "a@x.com", models.RoleEvaluator)

	resp := performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "S1",
		"score":        87,
	}, evaluator.Token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.SubmitEvaluationResponse
	decodeResponse(t, resp, &created)
	require.Equal(t, "Evaluation submitted successfully. Score is now final.", created.Message)
	require.True(t, created.Evaluation.IsFinal)
	require.Equal(t, 87.0, created.Evaluation.Score)
	require.Equal(t, "S1", created.Evaluation.SubmissionID)
	require.NotNil(t, created.Evaluation.Evaluator)
	require.Equal(t, "Eve", created.Evaluation.Evaluator.Name)

	resp = performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "S1",
		"score":        42,
	}, evaluator.Token)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var conflict struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &conflict)
	require.Equal(t, "You have already submitted an evaluation for this submission. Scores are final and cannot be modified.", conflict.Message)
}

func TestEvaluationSubmitScoreValidation(t *testing.T) {
	app, _, _ := setupApp(t)
	evaluator := registerUser(t, app, "Eve", "b@x.com", models.RoleEvaluator)

	cases := []map[string]interface{}{
		{"submissionId": "S1", "score": -1},
		{"submissionId": "S1", "score": 101},
		{"submissionId": "S1", "score": "abc"},
		{"submissionId": "S1"},
		{"score": 50},
	}
	for _, payload := range cases {
		resp := performJSON(t, app, http.MethodPost, "/api/evaluations/submit", payload, evaluator.Token)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "payload %v", payload)
	}

	// Boundaries are inclusive.
	resp := performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "zero", "score": 0,
	}, evaluator.Token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "hundred", "score": 100,
	}, evaluator.Token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestEvaluationListMine(t *testing.T) {
	app, _, _ := setupApp(t)
	eve := registerUser(t, app, "Eve", "c@x.com", models.RoleEvaluator)
	oz := registerUser(t, app, "Oz", "d@x.com", models.RoleEvaluator)

	for _, submission := range []string{"S1", "S2", "S3"} {
		resp := performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
			"submissionId": submission, "score": 75,
		}, eve.Token)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	resp := performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "S1", "score": 30,
	}, oz.Token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = performJSON(t, app, http.MethodGet, "/api/evaluations/my", nil, eve.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listing dto.EvaluationListResponse
	decodeResponse(t, resp, &listing)
	require.Equal(t, 3, listing.Count)
	require.Len(t, listing.Evaluations, 3)
	require.Equal(t, "S3", listing.Evaluations[0].SubmissionID, "expected newest evaluation first")
	require.Equal(t, "S2", listing.Evaluations[1].SubmissionID)
	require.Equal(t, "S1", listing.Evaluations[2].SubmissionID)
	for _, evaluation := range listing.Evaluations {
		require.NotNil(t, evaluation.Evaluator)
		require.Equal(t, eve.User.ID, evaluation.Evaluator.ID)
	}
}

func TestEvaluationListAllRequiresAdmin(t *testing.T) {
	app, _, _ := setupApp(t)
	evaluator := registerUser(t, app, "Eve", "e@x.com", models.RoleEvaluator)
	admin := registerUser(t, app, "Ada", "f@x.com", models.RoleAdmin)

	resp := performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "S1", "score": 95,
	}, evaluator.Token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Evaluator tokens are not enough for the system-wide listing.
	resp = performJSON(t, app, http.MethodGet, "/api/evaluations/all", nil, evaluator.Token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Admins cannot submit scores either.
	resp = performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "S2", "score": 10,
	}, admin.Token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = performJSON(t, app, http.MethodGet, "/api/evaluations/all", nil, admin.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NotContains(t, string(raw), "$2a$", "password hashes must never appear in listings")
}

func TestEvaluationEndpointsRejectUnauthenticated(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "S1", "score": 50,
	}, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = performJSON(t, app, http.MethodGet, "/api/evaluations/my", nil, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = performJSON(t, app, http.MethodGet, "/api/evaluations/all", nil, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestEvaluationListAllJoinsEvaluatorIdentity(t *testing.T) {
	app, _, _ := setupApp(t)
	evaluator := registerUser(t, app, "Eve", "g@x.com", models.RoleEvaluator)
	admin := registerUser(t, app, "Ada", "h@x.com", models.RoleAdmin)

	resp := performJSON(t, app, http.MethodPost, "/api/evaluations/submit", map[string]interface{}{
		"submissionId": "S1", "score": 88, "remarks": "solid work",
	}, evaluator.Token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = performJSON(t, app, http.MethodGet, "/api/evaluations/all", nil, admin.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listing dto.EvaluationListResponse
	decodeResponse(t, resp, &listing)
	require.Equal(t, 1, listing.Count)
	require.NotNil(t, listing.Evaluations[0].Evaluator)
	require.Equal(t, "Eve", listing.Evaluations[0].Evaluator.Name)
	require.Equal(t, "g@x.com", listing.Evaluations[0].Evaluator.Email)
	require.Equal(t, "solid work", listing.Evaluations[0].Remarks)
}
