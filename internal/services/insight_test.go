package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/roeai"
)

// stubAgent records the last call so tests can assert on the outbound request
// without any network.
type stubAgent struct {
	calls      int
	lastFile   string
	lastFields map[string]string
	response   json.RawMessage
	err        error
}

func (s *stubAgent) SubmitFile(ctx context.Context, agentID, token, filePath, instruction, pageRange string) (json.RawMessage, error) {
	s.calls++
	s.lastFile = filePath
	s.lastFields = map[string]string{"instruction": instruction, "page_filter": pageRange}
	return s.response, s.err
}

func (s *stubAgent) SubmitURLForm(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	s.calls++
	s.lastFields = fields
	return s.response, s.err
}

func (s *stubAgent) SubmitText(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	s.calls++
	s.lastFields = fields
	return s.response, s.err
}

func insightConfig() config.RoeAIConfig {
	return config.RoeAIConfig{
		InsightAgentID:     "insight-agent",
		InsightBearerToken: "insight-token",
		InsightInstruction: "Please extract actionable insights from the candidates' resume",
		InsightPageFilter:  "@PAGERANGE(1-3)",
	}
}

func TestExtractInsights_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.RoeAIConfig)
	}{
		{name: "missing agent id", mutate: func(cfg *config.RoeAIConfig) { cfg.InsightAgentID = "" }},
		{name: "missing token", mutate: func(cfg *config.RoeAIConfig) { cfg.InsightBearerToken = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := insightConfig()
			tt.mutate(&cfg)

			agent := &stubAgent{}
			service := NewInsightService(agent, cfg)

			_, err := service.ExtractInsights(context.Background(), "/tmp/resume.pdf")

			assert.True(t, roeai.IsKind(err, roeai.KindMissingCredentials))
			assert.Equal(t, 0, agent.calls, "no network call may be attempted without credentials")
		})
	}
}

func TestExtractInsights_Success(t *testing.T) {
	agent := &stubAgent{
		response: json.RawMessage(`{"name":"John Doe","email":"john@x.com","skills":[{"name":"Python","proficiency":4}]}`),
	}
	service := NewInsightService(agent, insightConfig())

	profile, err := service.ExtractInsights(context.Background(), "/uploads/resume_abc.pdf")

	require.NoError(t, err)
	assert.Equal(t, "John Doe", profile.Name)
	assert.Equal(t, "john@x.com", profile.Email)
	require.Len(t, profile.Skills, 1)
	assert.Equal(t, "Python", profile.Skills[0].Name)
	assert.Equal(t, "Intermediate", profile.Skills[0].Label())

	assert.Equal(t, "/uploads/resume_abc.pdf", agent.lastFile)
	assert.Equal(t, "Please extract actionable insights from the candidates' resume", agent.lastFields["instruction"])
	assert.Equal(t, "@PAGERANGE(1-3)", agent.lastFields["page_filter"])
}

func TestExtractInsights_SchemaMismatch(t *testing.T) {
	raw := `{"name":"John Doe","skills":[]}`
	agent := &stubAgent{response: json.RawMessage(raw)}
	service := NewInsightService(agent, insightConfig())

	_, err := service.ExtractInsights(context.Background(), "/uploads/resume_abc.pdf")

	agentErr, ok := roeai.AsError(err)
	require.True(t, ok)
	assert.Equal(t, roeai.KindSchemaMismatch, agentErr.Kind)
	assert.JSONEq(t, raw, string(agentErr.Raw), "the raw value must be kept for inspection")
}

func TestExtractInsights_TransportFailure(t *testing.T) {
	agent := &stubAgent{err: roeai.Transport("agent returned status 500", nil)}
	service := NewInsightService(agent, insightConfig())

	_, err := service.ExtractInsights(context.Background(), "/uploads/resume_abc.pdf")

	assert.True(t, roeai.IsKind(err, roeai.KindTransport))
	assert.Contains(t, err.Error(), "transport")
}
