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

type InsightsHandler struct {
	sessions       services.SessionStore
	insightService services.InsightService
	stageRepo      repositories.StageRecordRepository
}

func NewInsightsHandler(
	sessions services.SessionStore,
	insightService services.InsightService,
	stageRepo repositories.StageRecordRepository,
) *InsightsHandler {
	return &InsightsHandler{
		sessions:       sessions,
		insightService: insightService,
		stageRepo:      stageRepo,
	}
}

// HandleExtract handles POST /sessions/:id/insights.
func (h *InsightsHandler) HandleExtract(c *fiber.Ctx) error {
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

	if session.Document == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "upload a resume before extracting insights",
		})
	}

	profile, err := h.insightService.ExtractInsights(c.UserContext(), session.Document.FilePath)
	if err != nil {
		if agentErr, ok := roeai.AsError(err); ok && agentErr.Kind == roeai.KindSchemaMismatch {
			// Keep the raw value around for inspection; the session stays
			// where it was.
			h.sessions.SetRawInsights(sessionID, agentErr.Raw)
			recordStage(h.stageRepo, sessionID, models.StageInsights, models.StageSchemaMismatch, agentErr.Raw, err)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"warning": "Received response does not match expected schema.",
				"raw":     json.RawMessage(agentErr.Raw),
			})
		}

		recordStage(h.stageRepo, sessionID, models.StageInsights, models.StageFailed, nil, err)
		return agentErrorResponse(c, err)
	}

	if err := h.sessions.SetProfile(sessionID, profile); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	payload, _ := json.Marshal(profile)
	recordStage(h.stageRepo, sessionID, models.StageInsights, models.StageCompleted, payload, nil)

	return c.JSON(fiber.Map{
		"message": "Resume processed successfully",
		"profile": models.NewProfileView(profile),
	})
}
