package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/repositories"
	"alfredoptarigan/resume-insights/internal/roeai"
)

// recordStage writes an audit row for a stage attempt. Failures here are
// logged, never surfaced; the audit trail must not block the session flow.
func recordStage(
	repo repositories.StageRecordRepository,
	sessionID uuid.UUID,
	stage models.Stage,
	status models.StageStatus,
	payload json.RawMessage,
	stageErr error,
) {
	record := &models.StageRecord{
		ID:        uuid.New(),
		SessionID: sessionID,
		Stage:     stage,
		Status:    status,
	}

	if len(payload) > 0 {
		text := string(payload)
		record.Payload = &text
	}
	if stageErr != nil {
		msg := stageErr.Error()
		record.ErrorMessage = &msg
	}

	if err := repo.Create(record); err != nil {
		log.Printf("⚠️  Failed to record %s stage: %v\n", stage, err)
	}
}

// agentErrorResponse maps a failed agent call to a user-facing JSON message.
// The detailed cause is already logged by the service layer; the user sees a
// short description, never a trace.
func agentErrorResponse(c *fiber.Ctx, err error) error {
	if agentErr, ok := roeai.AsError(err); ok {
		switch agentErr.Kind {
		case roeai.KindMissingCredentials:
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "agent credentials are not configured for this stage",
			})
		case roeai.KindNotFound:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "uploaded resume file is no longer available",
			})
		case roeai.KindTransport:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "agent request failed; please try again",
			})
		case roeai.KindDecode:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "agent returned an unreadable response",
			})
		}
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "unexpected error while running the agent",
	})
}
