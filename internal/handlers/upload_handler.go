package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/repositories"
	"alfredoptarigan/resume-insights/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	pdfService     services.PDFService
	sessions       services.SessionStore
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	pdfService services.PDFService,
	sessions services.SessionStore,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		pdfService:     pdfService,
		sessions:       sessions,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. A new resume attached to an existing
// session clears every downstream stage result.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required (field 'resume', PDF)",
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	// Save file
	filename, filePath, err := h.storageService.SaveFile(resumeFile)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	// Reject files the agent would choke on before anything is recorded
	info, err := h.pdfService.Inspect(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "uploaded file is not a readable PDF",
		})
	}

	// Create document record
	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: resumeFile.Filename,
		FilePath:         filePath,
		PageCount:        info.PageCount,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume document record: %v", err),
		})
	}

	session, err := h.resolveSession(c.FormValue("session_id"), &doc)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		SessionID:    session.ID.String(),
		DocumentID:   doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		PageCount:    doc.PageCount,
	})
}

func (h *UploadHandler) resolveSession(sessionIDParam string, doc *models.Document) (*services.Session, error) {
	if sessionIDParam == "" {
		return h.sessions.Create(doc), nil
	}

	sessionID, err := uuid.Parse(sessionIDParam)
	if err != nil {
		return h.sessions.Create(doc), nil
	}

	return h.sessions.Attach(sessionID, doc)
}
