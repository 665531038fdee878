package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/repositories"
	"alfredoptarigan/resume-insights/internal/services"
)

type SessionHandler struct {
	sessions  services.SessionStore
	stageRepo repositories.StageRecordRepository
}

func NewSessionHandler(
	sessions services.SessionStore,
	stageRepo repositories.StageRecordRepository,
) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		stageRepo: stageRepo,
	}
}

// HandleGet handles GET /sessions/:id — the read-only snapshot the display
// layer renders from.
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
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

	response := models.SessionResponse{
		SessionID:   session.ID.String(),
		State:       string(session.State()),
		Profile:     models.NewProfileView(session.Profile),
		RawInsights: session.RawInsights,
		JobDetails:  session.JobDetails,
		Fit:         models.NewFitView(session.Fit),
	}

	if session.Document != nil {
		response.Document = &models.UploadResponse{
			SessionID:    session.ID.String(),
			DocumentID:   session.Document.ID.String(),
			Filename:     session.Document.Filename,
			OriginalName: session.Document.OriginalFileName,
			PageCount:    session.Document.PageCount,
		}
	}

	return c.JSON(response)
}

// HandleHistory handles GET /sessions/:id/history — the audit trail of every
// stage attempt, newest first.
func (h *SessionHandler) HandleHistory(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	if _, err := h.sessions.Get(sessionID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	records, err := h.stageRepo.FindBySessionID(sessionID, 50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load stage history",
		})
	}

	return c.JSON(fiber.Map{
		"session_id": sessionID.String(),
		"records":    records,
	})
}
