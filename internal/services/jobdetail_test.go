package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/roeai"
)

func jobConfig() config.RoeAIConfig {
	return config.RoeAIConfig{
		JobAgentID:        "job-agent",
		SharedBearerToken: "shared-token",
		JobInstruction:    "Please extract the job title, responsibilities, and requirements from this job posting page",
	}
}

func TestExtractJobDetails_MissingCredentials(t *testing.T) {
	cfg := jobConfig()
	cfg.SharedBearerToken = ""

	agent := &stubAgent{}
	service := NewJobDetailService(agent, cfg)

	_, err := service.ExtractJobDetails(context.Background(), models.JobRequest{URL: "https://jobs.example.com/1"})

	assert.True(t, roeai.IsKind(err, roeai.KindMissingCredentials))
	assert.Equal(t, 0, agent.calls)
}

func TestExtractJobDetails_Success(t *testing.T) {
	agent := &stubAgent{response: json.RawMessage(`{"result":"Senior Go engineer, 5+ years, Postgres"}`)}
	service := NewJobDetailService(agent, jobConfig())

	details, err := service.ExtractJobDetails(context.Background(), models.JobRequest{
		URL:          "https://jobs.example.com/1",
		FormSelector: "#description",
		FormFields:   map[string]string{"cookie_banner": "dismiss"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer, 5+ years, Postgres", details.Result)

	assert.Equal(t, "https://jobs.example.com/1", agent.lastFields["url"])
	assert.Equal(t, "#description", agent.lastFields["form_selector"])
	assert.JSONEq(t, `{"cookie_banner":"dismiss"}`, agent.lastFields["form_fields"])
	assert.NotEmpty(t, agent.lastFields["instruction"])
}

func TestExtractJobDetails_OptionalFieldsOmitted(t *testing.T) {
	agent := &stubAgent{response: json.RawMessage(`{"result":"some job"}`)}
	service := NewJobDetailService(agent, jobConfig())

	_, err := service.ExtractJobDetails(context.Background(), models.JobRequest{URL: "https://jobs.example.com/2"})

	require.NoError(t, err)
	_, hasSelector := agent.lastFields["form_selector"]
	_, hasFields := agent.lastFields["form_fields"]
	assert.False(t, hasSelector)
	assert.False(t, hasFields)
}

func TestExtractJobDetails_EmptyResult(t *testing.T) {
	agent := &stubAgent{response: json.RawMessage(`{"result":""}`)}
	service := NewJobDetailService(agent, jobConfig())

	_, err := service.ExtractJobDetails(context.Background(), models.JobRequest{URL: "https://jobs.example.com/3"})

	assert.True(t, roeai.IsKind(err, roeai.KindSchemaMismatch))
}

func TestExtractJobDetails_TransportFailure(t *testing.T) {
	agent := &stubAgent{err: roeai.Transport("agent returned status 500", nil)}
	service := NewJobDetailService(agent, jobConfig())

	_, err := service.ExtractJobDetails(context.Background(), models.JobRequest{URL: "https://jobs.example.com/4"})

	assert.True(t, roeai.IsKind(err, roeai.KindTransport))
}
