package services

import (
	"context"
	"encoding/json"
	"log"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/roeai"
)

type InsightService interface {
	ExtractInsights(ctx context.Context, filePath string) (*models.CandidateProfile, error)
}

type insightService struct {
	client      roeai.AgentAPI
	agentID     string
	token       string
	instruction string
	pageFilter  string
}

func NewInsightService(client roeai.AgentAPI, cfg config.RoeAIConfig) InsightService {
	return &insightService{
		client:      client,
		agentID:     cfg.InsightAgentID,
		token:       cfg.InsightBearerToken,
		instruction: cfg.InsightInstruction,
		pageFilter:  cfg.InsightPageFilter,
	}
}

// ExtractInsights implements InsightService.
func (s *insightService) ExtractInsights(ctx context.Context, filePath string) (*models.CandidateProfile, error) {
	if s.agentID == "" || s.token == "" {
		err := roeai.MissingCredentials("insight")
		log.Printf("⚠️  Insight extraction skipped: %v\n", err)
		return nil, err
	}

	value, err := s.client.SubmitFile(ctx, s.agentID, s.token, filePath, s.instruction, s.pageFilter)
	if err != nil {
		log.Printf("❌ Insight extraction failed: %v\n", err)
		return nil, err
	}

	profile, err := parseProfile(value)
	if err != nil {
		log.Printf("⚠️  Insight response did not match the expected schema: %v\n", err)
		return nil, err
	}

	log.Printf("✅ Insights extracted for %s (%d skills)\n", profile.Name, len(profile.Skills))
	return profile, nil
}

// parseProfile validates field presence before decoding, so a response that is
// valid JSON but lacks the required fields surfaces as a schema mismatch with
// the raw value attached rather than a zero-valued profile.
func parseProfile(value json.RawMessage) (*models.CandidateProfile, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(value, &probe); err != nil {
		return nil, roeai.Decode("insight result is not a JSON object", err)
	}

	for _, field := range []string{"name", "email", "skills"} {
		if _, ok := probe[field]; !ok {
			return nil, roeai.SchemaMismatch("insight result missing required field "+field, value)
		}
	}

	var profile models.CandidateProfile
	if err := json.Unmarshal(value, &profile); err != nil {
		return nil, roeai.SchemaMismatch("insight result fields have unexpected types", value)
	}

	return &profile, nil
}
