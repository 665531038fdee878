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

type JobHandler struct {
	sessions         services.SessionStore
	jobDetailService services.JobDetailService
	stageRepo        repositories.StageRecordRepository
}

func NewJobHandler(
	sessions services.SessionStore,
	jobDetailService services.JobDetailService,
	stageRepo repositories.StageRecordRepository,
) *JobHandler {
	return &JobHandler{
		sessions:         sessions,
		jobDetailService: jobDetailService,
		stageRepo:        stageRepo,
	}
}

// HandleExtract handles POST /sessions/:id/job.
func (h *JobHandler) HandleExtract(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	var req models.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url is required",
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
			"error": "extract resume insights before fetching job details",
		})
	}

	details, err := h.jobDetailService.ExtractJobDetails(c.UserContext(), req)
	if err != nil {
		if agentErr, ok := roeai.AsError(err); ok && agentErr.Kind == roeai.KindSchemaMismatch {
			recordStage(h.stageRepo, sessionID, models.StageJobDetails, models.StageSchemaMismatch, agentErr.Raw, err)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"warning": "Received response does not match expected schema.",
				"raw":     json.RawMessage(agentErr.Raw),
			})
		}

		recordStage(h.stageRepo, sessionID, models.StageJobDetails, models.StageFailed, nil, err)
		return agentErrorResponse(c, err)
	}

	if err := h.sessions.SetJobDetails(sessionID, details); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	payload, _ := json.Marshal(details)
	recordStage(h.stageRepo, sessionID, models.StageJobDetails, models.StageCompleted, payload, nil)

	return c.JSON(fiber.Map{
		"message":     "Job details extracted successfully",
		"job_details": details,
	})
}
