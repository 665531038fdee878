package roeai

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAgent counts calls and returns a canned response.
type fakeAgent struct {
	calls    int
	response json.RawMessage
	err      error
}

func (f *fakeAgent) SubmitFile(ctx context.Context, agentID, token, filePath, instruction, pageRange string) (json.RawMessage, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeAgent) SubmitURLForm(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeAgent) SubmitText(ctx context.Context, agentID, token string, fields map[string]string) (json.RawMessage, error) {
	f.calls++
	return f.response, f.err
}

func TestMemoizer_IdenticalCallHitsNetworkOnce(t *testing.T) {
	inner := &fakeAgent{response: json.RawMessage(`{"result":"ok"}`)}
	memo := NewMemoizer(inner)
	ctx := context.Background()

	first, err := memo.SubmitText(ctx, "agent", "token", map[string]string{"prompt": "p", "target": "t"})
	require.NoError(t, err)

	second, err := memo.SubmitText(ctx, "agent", "token", map[string]string{"prompt": "p", "target": "t"})
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "identical call must be served from cache")
	assert.Equal(t, string(first), string(second))
}

func TestMemoizer_DifferentArgumentsMiss(t *testing.T) {
	inner := &fakeAgent{response: json.RawMessage(`{"result":"ok"}`)}
	memo := NewMemoizer(inner)
	ctx := context.Background()

	_, err := memo.SubmitText(ctx, "agent", "token", map[string]string{"prompt": "p", "target": "t1"})
	require.NoError(t, err)
	_, err = memo.SubmitText(ctx, "agent", "token", map[string]string{"prompt": "p", "target": "t2"})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestMemoizer_CallShapesDoNotCollide(t *testing.T) {
	inner := &fakeAgent{response: json.RawMessage(`{"result":"ok"}`)}
	memo := NewMemoizer(inner)
	ctx := context.Background()

	fields := map[string]string{"url": "https://jobs.example.com/1", "instruction": "i"}
	_, err := memo.SubmitURLForm(ctx, "agent", "token", fields)
	require.NoError(t, err)
	_, err = memo.SubmitText(ctx, "agent", "token", fields)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "url and text variants with equal fields are distinct calls")
}

func TestMemoizer_FailuresNotCached(t *testing.T) {
	inner := &fakeAgent{err: Transport("agent returned status 500", nil)}
	memo := NewMemoizer(inner)
	ctx := context.Background()

	_, err := memo.SubmitText(ctx, "agent", "token", map[string]string{"prompt": "p"})
	assert.True(t, IsKind(err, KindTransport))

	inner.err = nil
	inner.response = json.RawMessage(`{"result":"ok"}`)

	value, err := memo.SubmitText(ctx, "agent", "token", map[string]string{"prompt": "p"})
	require.NoError(t, err)
	assert.Equal(t, `{"result":"ok"}`, string(value))
	assert.Equal(t, 2, inner.calls, "a failed call must be retried on the next trigger")
}
