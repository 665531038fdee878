package roeai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AgentAPI runs Roe AI agents over HTTP. The three entry points differ only in
// how the request body is built; auth, status handling and envelope decoding
// are shared. Each returns the inner JSON value extracted from the agent
// response envelope.
type AgentAPI interface {
	SubmitFile(ctx context.Context, agentID, token, filePath, instruction, pageRange string) (json.RawMessage, error)
	SubmitURLForm(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error)
	SubmitText(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error)
}

// Doer is the transport seam, satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type client struct {
	baseURL string
	http    Doer
}

// NewClient builds an agent client against the given base URL. Agent runs can
// take a while, so the default transport allows up to two minutes per call.
func NewClient(baseURL string) AgentAPI {
	return NewClientWithDoer(baseURL, &http.Client{Timeout: 2 * time.Minute})
}

func NewClientWithDoer(baseURL string, doer Doer) AgentAPI {
	return &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    doer,
	}
}

// SubmitFile implements AgentAPI.
func (c *client) SubmitFile(ctx context.Context, agentID, token, filePath, instruction, pageRange string) (json.RawMessage, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, NotFound(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, NotFound(filePath)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdf_file"; filename=%q`, filepath.Base(filePath)))
	header.Set("Content-Type", "application/pdf")

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, Transport("failed to build multipart body", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, Transport("failed to read file into request body", err)
	}

	if err := writer.WriteField("instruction", instruction); err != nil {
		return nil, Transport("failed to build multipart body", err)
	}
	if err := writer.WriteField("page_filter", pageRange); err != nil {
		return nil, Transport("failed to build multipart body", err)
	}
	if err := writer.Close(); err != nil {
		return nil, Transport("failed to build multipart body", err)
	}

	return c.run(ctx, agentID, token, writer.FormDataContentType(), &body)
}

// SubmitURLForm implements AgentAPI.
func (c *client) SubmitURLForm(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	return c.submitForm(ctx, agentID, token, fields)
}

// SubmitText implements AgentAPI.
func (c *client) SubmitText(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	return c.submitForm(ctx, agentID, token, fields)
}

func (c *client) submitForm(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	form := url.Values{}
	for key, value := range fields {
		form.Set(key, value)
	}

	body := strings.NewReader(form.Encode())
	return c.run(ctx, agentID, token, "application/x-www-form-urlencoded", body)
}

func (c *client) run(ctx context.Context, agentID, token, contentType string, body io.Reader) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/v1/agents/run/%s/", c.baseURL, agentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, Transport("failed to build request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, Transport("agent request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Transport("failed to read agent response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, Transport(fmt.Sprintf("agent returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200)), nil)
	}

	return decodeEnvelope(respBody)
}

// decodeEnvelope unpacks the agent response envelope. The body is
// {"result":[{"value":...}]} where value is usually a JSON string that itself
// contains JSON text (double-encoded by the agent runtime). Markdown code
// fences around the inner text are stripped before the second decode.
func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var envelope struct {
		Result []struct {
			Value json.RawMessage `json:"value"`
		} `json:"result"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, Decode("agent response is not valid JSON", err)
	}

	if len(envelope.Result) == 0 || len(envelope.Result[0].Value) == 0 {
		return nil, Decode("agent response has no result value", nil)
	}

	value := envelope.Result[0].Value

	// Double-encoded case: value is a JSON string holding JSON text.
	var inner string
	if err := json.Unmarshal(value, &inner); err == nil {
		inner = extractJSON(inner)
		if !json.Valid([]byte(inner)) {
			return nil, Decode("agent result value is not valid JSON text", nil)
		}
		return json.RawMessage(inner), nil
	}

	// Already-structured case: value is a plain object or array.
	return value, nil
}

// extractJSON trims markdown fences and surrounding prose from text that
// should contain a JSON object or array.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
