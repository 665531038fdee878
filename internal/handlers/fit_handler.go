package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/repositories"
	"alfredoptarigan/resume-insights/internal/roeai"
	"alfredoptarigan/resume-insights/internal/services"
)

type FitHandler struct {
	sessions   services.SessionStore
	fitService services.FitService
	stageRepo  repositories.StageRecordRepository
}

func NewFitHandler(
	sessions services.SessionStore,
	fitService services.FitService,
	stageRepo repositories.StageRecordRepository,
) *FitHandler {
	return &FitHandler{
		sessions:   sessions,
		fitService: fitService,
		stageRepo:  stageRepo,
	}
}

// HandleEvaluate handles POST /sessions/:id/fit. Both upstream stages must
// have produced a result first.
func (h *FitHandler) HandleEvaluate(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.sessions.Get(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	if session.Profile == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "extract resume insights before assessing fit",
		})
	}

	if session.JobDetails == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "extract job details before assessing fit",
		})
	}

	assessment, err := h.fitService.EvaluateFit(c.UserContext(), session.Profile, session.JobDetails)
	if err != nil {
		if agentErr, ok := roeai.AsError(err); ok && agentErr.Kind == roeai.KindSchemaMismatch {
			recordStage(h.stageRepo, sessionID, models.StageFit, models.StageSchemaMismatch, agentErr.Raw, err)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"warning": "Received response does not match expected schema.",
				"raw":     json.RawMessage(agentErr.Raw),
			})
		}

		recordStage(h.stageRepo, sessionID, models.StageFit, models.StageFailed, nil, err)
		return agentErrorResponse(c, err)
	}

	if err := h.sessions.SetFit(sessionID, assessment); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	payload, _ := json.Marshal(assessment)
	recordStage(h.stageRepo, sessionID, models.StageFit, models.StageCompleted, payload, nil)

	return c.JSON(fiber.Map{
		"message": "Fit assessment completed",
		"fit":     models.NewFitView(assessment),
	})
}
