package services

import (
	"context"
	"encoding/json"
	"log"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/roeai"
)

type JobDetailService interface {
	ExtractJobDetails(ctx context.Context, req models.JobRequest) (*models.JobDetails, error)
}

type jobDetailService struct {
	client      roeai.AgentAPI
	agentID     string
	token       string
	instruction string
}

func NewJobDetailService(client roeai.AgentAPI, cfg config.RoeAIConfig) JobDetailService {
	return &jobDetailService{
		client:      client,
		agentID:     cfg.JobAgentID,
		token:       cfg.SharedBearerToken,
		instruction: cfg.JobInstruction,
	}
}

// ExtractJobDetails implements JobDetailService.
func (s *jobDetailService) ExtractJobDetails(ctx context.Context, req models.JobRequest) (*models.JobDetails, error) {
	if s.agentID == "" || s.token == "" {
		err := roeai.MissingCredentials("job extraction")
		log.Printf("⚠️  Job extraction skipped: %v\n", err)
		return nil, err
	}

	fields := map[string]string{
		"url":         req.URL,
		"instruction": s.instruction,
	}

	// Selector overrides let the agent interact with dynamic job pages.
	if req.FormSelector != "" {
		fields["form_selector"] = req.FormSelector
	}
	if len(req.FormFields) > 0 {
		encoded, err := json.Marshal(req.FormFields)
		if err != nil {
			return nil, roeai.Decode("failed to encode form field overrides", err)
		}
		fields["form_fields"] = string(encoded)
	}

	value, err := s.client.SubmitURLForm(ctx, s.agentID, s.token, fields)
	if err != nil {
		log.Printf("❌ Job extraction failed for %s: %v\n", req.URL, err)
		return nil, err
	}

	var details models.JobDetails
	if err := json.Unmarshal(value, &details); err != nil {
		log.Printf("⚠️  Job response did not match the expected schema: %v\n", err)
		return nil, roeai.SchemaMismatch("job result is not an object with a result field", value)
	}

	if details.Result == "" {
		log.Println("⚠️  Job response has an empty result field")
		return nil, roeai.SchemaMismatch("job result field is empty", value)
	}

	log.Printf("✅ Job details extracted from %s\n", req.URL)
	return &details, nil
}
