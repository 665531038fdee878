package services

import (
	"context"
	"encoding/json"
	"log"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/roeai"
)

type FitService interface {
	EvaluateFit(ctx context.Context, profile *models.CandidateProfile, job *models.JobDetails) (*models.FitAssessment, error)
}

type fitService struct {
	client        roeai.AgentAPI
	agentID       string
	token         string
	promptBuilder *PromptBuilder
}

func NewFitService(client roeai.AgentAPI, cfg config.RoeAIConfig) FitService {
	return &fitService{
		client:        client,
		agentID:       cfg.EvaluateAgentID,
		token:         cfg.SharedBearerToken,
		promptBuilder: NewPromptBuilder(),
	}
}

// EvaluateFit implements FitService. The matching itself happens in the agent;
// this side only packages the two upstream results into one labeled target
// blob and validates the verdict that comes back.
func (s *fitService) EvaluateFit(ctx context.Context, profile *models.CandidateProfile, job *models.JobDetails) (*models.FitAssessment, error) {
	if s.agentID == "" || s.token == "" {
		err := roeai.MissingCredentials("fit evaluation")
		log.Printf("⚠️  Fit evaluation skipped: %v\n", err)
		return nil, err
	}

	candidateJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, roeai.Decode("failed to encode candidate profile", err)
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return nil, roeai.Decode("failed to encode job details", err)
	}

	fields := map[string]string{
		"prompt": s.promptBuilder.BuildFitPrompt(),
		"target": s.promptBuilder.BuildFitTarget(string(candidateJSON), string(jobJSON)),
	}

	value, err := s.client.SubmitText(ctx, s.agentID, s.token, fields)
	if err != nil {
		log.Printf("❌ Fit evaluation failed: %v\n", err)
		return nil, err
	}

	assessment, err := parseAssessment(value)
	if err != nil {
		log.Printf("⚠️  Fit response did not match the expected schema: %v\n", err)
		return nil, err
	}

	log.Printf("✅ Fit assessed: %d%% (%s)\n", assessment.PercentageMatch, assessment.OverallRecommendation)
	return assessment, nil
}

func parseAssessment(value json.RawMessage) (*models.FitAssessment, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(value, &probe); err != nil {
		return nil, roeai.Decode("fit result is not a JSON object", err)
	}

	for _, field := range []string{"percentage_match", "overall_recommendation"} {
		if _, ok := probe[field]; !ok {
			return nil, roeai.SchemaMismatch("fit result missing required field "+field, value)
		}
	}

	var assessment models.FitAssessment
	if err := json.Unmarshal(value, &assessment); err != nil {
		return nil, roeai.SchemaMismatch("fit result fields have unexpected types", value)
	}

	return &assessment, nil
}
